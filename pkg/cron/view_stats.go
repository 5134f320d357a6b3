package cron

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"imovia_backend/internal/model"
	"imovia_backend/pkg/database"
)

// InitViewStatsCron schedules the daily counter reset and a weekly
// cleanup of raw view rows older than 90 days.
func InitViewStatsCron() {
	c := cron.New()

	_, err := c.AddFunc("0 0 * * *", resetDailyViews)
	if err != nil {
		log.Printf("Could not initialize view stats cron: %v", err)
		return
	}

	_, err = c.AddFunc("0 3 * * 0", pruneOldViews)
	if err != nil {
		log.Printf("Could not initialize view cleanup cron: %v", err)
		return
	}

	c.Start()
}

func resetDailyViews() {
	result := database.GetDB().Model(&model.ListingStats{}).
		Where("daily_views > 0").
		Update("daily_views", 0)

	if result.Error != nil {
		log.Printf("Could not reset daily views: %v", result.Error)
		return
	}

	log.Printf("Reset daily views for %d listings", result.RowsAffected)
}

func pruneOldViews() {
	cutoff := time.Now().AddDate(0, 0, -90)

	result := database.GetDB().Unscoped().
		Where("viewed_at < ?", cutoff).
		Delete(&model.ListingView{})

	if result.Error != nil {
		log.Printf("Could not prune old views: %v", result.Error)
		return
	}

	log.Printf("Pruned %d view records older than %s", result.RowsAffected, cutoff.Format("2006-01-02"))
}
