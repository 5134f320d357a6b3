package controller

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"imovia_backend/internal/favorites"
	"imovia_backend/internal/model"
	"imovia_backend/pkg/database"
	"imovia_backend/pkg/utils/jwt"
)

var (
	accountFavorites favorites.Store
	sessionFavorites favorites.Store
)

func InitFavoriteController(account, session favorites.Store) {
	accountFavorites = account
	sessionFavorites = session
}

// favoritesFor picks the store and owner key for the current request:
// authenticated users are keyed by user ID against the persistent store,
// anonymous ones by their session token against the in-memory store.
func favoritesFor(c *fiber.Ctx) (favorites.Store, string) {
	if claims, ok := c.Locals("user").(*jwt.Claims); ok {
		return accountFavorites, strconv.FormatUint(uint64(claims.UserID), 10)
	}

	return sessionFavorites, c.Get("X-Session-Token")
}

// ToggleFavorite flips membership for one listing. The response reflects
// the in-memory outcome even if the persistence write failed; divergence
// heals on the next full load.
func ToggleFavorite(c *fiber.Ctx) error {
	store, owner := favoritesFor(c)
	if owner == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing session token",
		})
	}

	listingID, err := strconv.ParseUint(c.Params("listing_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid listing ID",
		})
	}

	var exists model.Listing
	if err := database.GetDB().First(&exists, listingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	}

	favorited, err := store.Toggle(owner, uint(listingID))
	if err != nil {
		log.Printf("Could not persist favorite toggle: %v", err)
	}

	count, _ := store.Count(owner)

	return c.JSON(fiber.Map{
		"favorited": favorited,
		"count":     count,
	})
}

// ListFavorites resolves the favorited IDs to full listing records from
// the collection, keeping the favorites' own insertion order.
func ListFavorites(c *fiber.Ctx) error {
	store, owner := favoritesFor(c)
	if owner == "" {
		return c.JSON(fiber.Map{
			"listings": []model.Listing{},
			"count":    0,
		})
	}

	ids, err := store.List(owner)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch favorites",
		})
	}

	listings, err := loadActiveListings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch listings",
		})
	}

	byID := make(map[uint]model.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}

	result := make([]model.Listing, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			result = append(result, l)
		}
	}

	return c.JSON(fiber.Map{
		"listings": result,
		"count":    len(ids),
	})
}

// CheckFavorite reports membership for one listing.
func CheckFavorite(c *fiber.Ctx) error {
	store, owner := favoritesFor(c)

	listingID, err := strconv.ParseUint(c.Params("listing_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid listing ID",
		})
	}

	favorited := false
	if owner != "" {
		favorited, _ = store.Has(owner, uint(listingID))
	}

	return c.JSON(fiber.Map{
		"favorited": favorited,
	})
}
