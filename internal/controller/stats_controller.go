package controller

import (
	"github.com/gofiber/fiber/v2"

	"imovia_backend/internal/model"
	"imovia_backend/pkg/database"
)

type DashboardStats struct {
	TotalListings  int64        `json:"total_listings"`
	ActiveListings int64        `json:"active_listings"`
	DraftListings  int64        `json:"draft_listings"`
	TotalViews     int64        `json:"total_views"`
	TotalLeads     int64        `json:"total_leads"`
	UnreadLeads    int64        `json:"unread_leads"`
	TopListings    []TopListing `json:"top_listings"`
}

type TopListing struct {
	ID    uint    `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Views int64   `json:"views"`
}

// GetDashboardStats aggregates the admin dashboard numbers.
func GetDashboardStats(c *fiber.Ctx) error {
	db := database.GetDB()

	var stats DashboardStats

	db.Model(&model.Listing{}).Count(&stats.TotalListings)
	db.Model(&model.Listing{}).Where("active = ?", true).Count(&stats.ActiveListings)
	stats.DraftListings = stats.TotalListings - stats.ActiveListings

	db.Model(&model.ListingView{}).Count(&stats.TotalViews)
	db.Model(&model.Lead{}).Count(&stats.TotalLeads)
	db.Model(&model.Lead{}).Where("read_status = ?", false).Count(&stats.UnreadLeads)

	var topListings []TopListing
	db.Table("listings").
		Select("listings.id, listings.title, listings.price, COUNT(listing_views.id) as views").
		Joins("LEFT JOIN listing_views ON listings.id = listing_views.listing_id").
		Where("listings.active = ? AND listings.deleted_at IS NULL", true).
		Group("listings.id").
		Order("views DESC").
		Limit(5).
		Scan(&topListings)
	stats.TopListings = topListings

	return c.JSON(stats)
}
