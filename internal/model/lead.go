package model

import (
	"time"

	"gorm.io/gorm"
)

// Lead is a contact inquiry left on a listing detail page.
type Lead struct {
	gorm.Model
	ListingID   uint       `json:"listing_id" gorm:"index"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Message     string     `json:"message" gorm:"type:text"`
	Status      string     `json:"status" gorm:"default:'new'"` // new, contacted, closed
	ReadStatus  bool       `json:"read_status" gorm:"default:false"`
	ContactedAt *time.Time `json:"contacted_at"`

	Listing Listing `json:"listing" gorm:"foreignKey:ListingID"`
}
