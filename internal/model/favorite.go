package model

import (
	"gorm.io/gorm"
)

// Favorite links an authenticated user to a listing. Anonymous favorites
// never reach this table; they live in the session cache only.
type Favorite struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"uniqueIndex:idx_user_listing_fav;not null"`
	ListingID uint `json:"listing_id" gorm:"uniqueIndex:idx_user_listing_fav;not null"`

	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Listing Listing `json:"-" gorm:"foreignKey:ListingID"`
}
