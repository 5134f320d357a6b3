package controller

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"imovia_backend/internal/model"
	"imovia_backend/pkg/database"
	"imovia_backend/pkg/email"
)

type LeadInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message"`
}

// CreateLead records a contact inquiry on a listing and notifies the
// configured admin mailbox.
func CreateLead(c *fiber.Ctx) error {
	listingID, err := strconv.ParseUint(c.Params("listing_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid listing ID",
		})
	}

	var target model.Listing
	if err := database.GetDB().First(&target, listingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	}

	input := new(LeadInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	lead := model.Lead{
		ListingID: uint(listingID),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
		Status:    "new",
	}

	if err := database.GetDB().Create(&lead).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create lead",
		})
	}

	if email.GlobalEmailService != nil && adminEmail != "" {
		err := email.GlobalEmailService.SendLeadNotification(adminEmail, email.LeadNotificationData{
			ListingTitle: target.Title,
			LeadName:     input.Name,
			LeadEmail:    input.Email,
			LeadPhone:    input.Phone,
			LeadMessage:  input.Message,
		})
		if err != nil {
			log.Printf("Could not send lead notification email: %v", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your inquiry has been sent successfully",
	})
}

var adminEmail string

func InitLeadController(notifyEmail string) {
	adminEmail = notifyEmail
}

// GetLeads lists inquiries for the admin area, filterable by status,
// read state and listing.
func GetLeads(c *fiber.Ctx) error {
	var leads []model.Lead
	query := database.GetDB().Preload("Listing")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if readStatus := c.Query("read"); readStatus != "" {
		query = query.Where("read_status = ?", readStatus == "true")
	}
	if listingID := c.Query("listing_id"); listingID != "" {
		query = query.Where("listing_id = ?", listingID)
	}

	if err := query.Order("created_at desc").Find(&leads).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch leads",
		})
	}

	return c.JSON(leads)
}

// UpdateLeadStatus moves an inquiry through the contact pipeline.
func UpdateLeadStatus(c *fiber.Ctx) error {
	leadID := c.Params("id")

	var lead model.Lead
	if err := database.GetDB().First(&lead, leadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := map[string]interface{}{"status": body.Status}
	if body.Status == "contacted" && lead.ContactedAt == nil {
		now := time.Now()
		updates["contacted_at"] = &now
	}

	if err := database.GetDB().Model(&lead).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update lead",
		})
	}

	return c.JSON(lead)
}

// MarkLeadAsRead flags an inquiry as seen.
func MarkLeadAsRead(c *fiber.Ctx) error {
	leadID := c.Params("id")

	var lead model.Lead
	if err := database.GetDB().First(&lead, leadID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Lead not found",
		})
	}

	if err := database.GetDB().Model(&lead).Update("read_status", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update lead",
		})
	}

	return c.JSON(lead)
}
