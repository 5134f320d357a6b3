package controller

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"imovia_backend/internal/listing"
	"imovia_backend/internal/model"
	"imovia_backend/pkg/cache"
	"imovia_backend/pkg/database"
	"imovia_backend/pkg/utils/jwt"
)

var listingCache *cache.ListingCache

func InitListingController(c *cache.ListingCache) {
	listingCache = c
}

// loadActiveListings reads the full active collection through the cache.
func loadActiveListings() ([]model.Listing, error) {
	if listingCache != nil {
		if cached, ok := listingCache.Get(); ok {
			return cached, nil
		}
	}

	var listings []model.Listing
	err := database.GetDB().Where("active = ?", true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("listing_images.display_order ASC")
		}).
		Order("created_at desc").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}

	if listingCache != nil {
		listingCache.Set(listings)
	}
	return listings, nil
}

func specFromQuery(c *fiber.Ctx) listing.Spec {
	minRooms, _ := strconv.Atoi(c.Query("min_rooms"))
	maxPrice, _ := strconv.ParseFloat(c.Query("max_price"), 64)

	return listing.Spec{
		Query:       c.Query("q"),
		Transaction: model.TransactionType(c.Query("transaction")),
		Category:    model.Category(c.Query("category")),
		MinRooms:    minRooms,
		MaxPrice:    maxPrice,
	}
}

// ListListings returns the active listings matching the query filters,
// sorted by the requested key.
func ListListings(c *fiber.Ctx) error {
	listings, err := loadActiveListings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch listings",
		})
	}

	sortKey := listing.SortKey(c.Query("sort", string(listing.SortRecent)))
	result := listing.Apply(listings, specFromQuery(c), sortKey)

	return c.JSON(fiber.Map{
		"listings": result,
		"total":    len(result),
	})
}

// GetListing returns a single active listing by ID or slug and records
// the view.
func GetListing(c *fiber.Ctx) error {
	param := c.Params("id")

	query := database.GetDB().Where("active = ?", true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("listing_images.display_order ASC")
		})

	var found model.Listing
	var err error
	if id, convErr := strconv.ParseUint(param, 10, 32); convErr == nil {
		err = query.First(&found, id).Error
	} else {
		err = query.Where("slug = ?", param).First(&found).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Listing not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch listing",
		})
	}

	recordView(c, found.ID)

	return c.JSON(fiber.Map{
		"listing": found,
	})
}

// recordView logs the detail-page access. Failures never block the
// response.
func recordView(c *fiber.Ctx, listingID uint) {
	sessionID := c.Get("X-Session-Token")
	if sessionID == "" {
		sessionID = c.IP() + "_" + time.Now().Format("20060102")
	}

	var userID *uint
	if claims, ok := c.Locals("user").(*jwt.Claims); ok {
		userID = &claims.UserID
	}

	view := model.ListingView{
		ListingID: listingID,
		UserID:    userID,
		IP:        c.IP(),
		SessionID: sessionID,
		UserAgent: c.Get("User-Agent"),
		ViewedAt:  time.Now(),
	}

	if err := database.GetDB().Create(&view).Error; err != nil {
		log.Printf("Could not record listing view: %v", err)
	}
}

// GetLocations returns the distinct cities and neighborhoods present in
// active listings, for the filter dropdowns.
func GetLocations(c *fiber.Ctx) error {
	db := database.GetDB()

	var cities []string
	if err := db.Model(&model.Listing{}).
		Where("active = ?", true).
		Distinct("city").
		Order("city asc").
		Pluck("city", &cities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch locations",
		})
	}

	query := db.Model(&model.Listing{}).Where("active = ?", true)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	var neighborhoods []string
	if err := query.Distinct("neighborhood").
		Order("neighborhood asc").
		Pluck("neighborhood", &neighborhoods).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch locations",
		})
	}

	return c.JSON(fiber.Map{
		"cities":        cities,
		"neighborhoods": neighborhoods,
	})
}
