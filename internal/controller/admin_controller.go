package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"imovia_backend/internal/model"
	"imovia_backend/pkg/database"
	"imovia_backend/pkg/utils/storage"
	"imovia_backend/pkg/utils/validation"
)

func listingFromInput(input validation.ListingInput) model.Listing {
	var extras datatypes.JSON
	if len(input.Extras) > 0 {
		if raw, err := json.Marshal(input.Extras); err == nil {
			extras = raw
		}
	}

	l := model.Listing{
		Title:        input.Title,
		Transaction:  input.Transaction,
		Category:     input.Category,
		Description:  input.Description,
		Price:        input.Price,
		RentalPrice:  input.RentalPrice,
		Address:      input.Address,
		Neighborhood: input.Neighborhood,
		City:         input.City,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		AreaSqM:      input.AreaSqM,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Suites:       input.Suites,
		GarageSpaces: input.GarageSpaces,
		Dimensions:   input.Dimensions,
		Topography:   input.Topography,
		Zoning:       input.Zoning,
		Pool:         input.Pool,
		Barbecue:     input.Barbecue,
		Elevator:     input.Elevator,
		Furnished:    input.Furnished,
		Concierge:    input.Concierge,
		PetFriendly:  input.PetFriendly,
		Extras:       extras,
		Active:       input.Active,
		Featured:     input.Featured,
	}
	l.Normalize()
	return l
}

func saveImages(tx *gorm.DB, listingID uint, urls []string) error {
	for i, imageURL := range urls {
		image := model.ListingImage{
			ListingID: listingID,
			URL:       imageURL,
			Order:     i,
			IsCover:   i == 0,
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
	}
	return nil
}

func invalidateListings() {
	if listingCache != nil {
		listingCache.Invalidate()
	}
}

// CreateListing validates and persists a new listing with its image URLs.
func CreateListing(c *fiber.Ctx) error {
	input := new(validation.ListingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if len(input.Images) > model.MaxListingImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Maximum %d images allowed", model.MaxListingImages),
		})
	}

	if violations := validation.ValidateListing(*input); len(violations) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": violations,
		})
	}

	newListing := listingFromInput(*input)

	tx := database.GetDB().Begin()

	if err := tx.Create(&newListing).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create listing",
		})
	}

	if err := saveImages(tx, newListing.ID, input.Images); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save images",
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete the listing creation",
		})
	}

	invalidateListings()

	database.GetDB().Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("listing_images.display_order ASC")
	}).First(&newListing, newListing.ID)

	return c.Status(fiber.StatusCreated).JSON(newListing)
}

// UpdateListing validates and rewrites an existing listing. The submitted
// image URL list is authoritative: persisted URLs the admin removed in the
// form are excluded, newly uploaded ones appended.
func UpdateListing(c *fiber.Ctx) error {
	id := c.Params("id")

	input := new(validation.ListingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if len(input.Images) > model.MaxListingImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Maximum %d images allowed", model.MaxListingImages),
		})
	}

	if violations := validation.ValidateListing(*input); len(violations) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": violations,
		})
	}

	var existing model.Listing
	if err := database.GetDB().First(&existing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	}

	updated := listingFromInput(*input)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.Slug = existing.Slug

	tx := database.GetDB().Begin()

	if err := tx.Save(&updated).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update listing",
		})
	}

	if err := tx.Unscoped().Where("listing_id = ?", updated.ID).
		Delete(&model.ListingImage{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update images",
		})
	}

	if err := saveImages(tx, updated.ID, input.Images); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save new images",
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete the update",
		})
	}

	invalidateListings()

	database.GetDB().Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("listing_images.display_order ASC")
	}).First(&updated, updated.ID)

	return c.JSON(updated)
}

// ListAllListings returns every listing, drafts included, for the admin
// area.
func ListAllListings(c *fiber.Ctx) error {
	var listings []model.Listing
	if err := database.GetDB().
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("listing_images.display_order ASC")
		}).
		Order("created_at desc").
		Find(&listings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch listings",
		})
	}

	return c.JSON(listings)
}

// DeleteListing removes a listing and its image rows.
func DeleteListing(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing model.Listing
	if err := database.GetDB().First(&existing, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	}

	var images []model.ListingImage
	database.GetDB().Where("listing_id = ?", existing.ID).Find(&images)

	tx := database.GetDB().Begin()

	if err := tx.Delete(&existing).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete listing",
		})
	}

	if err := tx.Unscoped().Where("listing_id = ?", existing.ID).
		Delete(&model.ListingImage{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete images",
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete deletion",
		})
	}

	// Best effort: dangling objects are preferable to a failed request.
	for _, img := range images {
		_ = storage.DeleteImage(c.Context(), img.URL)
	}

	invalidateListings()

	return c.SendStatus(fiber.StatusNoContent)
}
