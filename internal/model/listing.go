package model

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Transaction Types
type TransactionType string

const (
	TransactionSale TransactionType = "sale"
	TransactionRent TransactionType = "rent"
	TransactionBoth TransactionType = "both"

	// TransactionAny is the filter sentinel, never persisted.
	TransactionAny TransactionType = "any"
)

// Listing Categories
type Category string

const (
	CategoryProperty Category = "property"
	CategoryLand     Category = "land"
)

// Land Topography
type Topography string

const (
	TopographyFlat      Topography = "flat"
	TopographyUphill    Topography = "uphill"
	TopographyDownhill  Topography = "downhill"
	TopographyIrregular Topography = "irregular"
)

// Land Zoning
type Zoning string

const (
	ZoningResidential Zoning = "residential"
	ZoningCommercial  Zoning = "commercial"
	ZoningMixed       Zoning = "mixed"
	ZoningRural       Zoning = "rural"
)

const MaxListingImages = 10

type Listing struct {
	gorm.Model
	Title       string          `json:"title" gorm:"not null"`
	Slug        string          `json:"slug" gorm:"uniqueIndex;not null"`
	Transaction TransactionType `json:"transaction" gorm:"not null"`
	Category    Category        `json:"category" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`

	// Pricing: Price is the sale or rent value depending on the transaction
	// type; RentalPrice is only meaningful when the transaction is "both".
	Price       float64 `json:"price" gorm:"not null"`
	RentalPrice float64 `json:"rental_price"`

	// Location fields
	Address      string  `json:"address" gorm:"not null"`
	Neighborhood string  `json:"neighborhood" gorm:"not null"`
	City         string  `json:"city" gorm:"not null"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`

	// Physical attributes
	AreaSqM      float64 `json:"area_sq_m"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Suites       int     `json:"suites"`
	GarageSpaces int     `json:"garage_spaces"`

	// Land-only attributes
	Dimensions string     `json:"dimensions"`
	Topography Topography `json:"topography"`
	Zoning     Zoning     `json:"zoning"`

	// Amenities
	Pool        bool `json:"pool"`
	Barbecue    bool `json:"barbecue"`
	Elevator    bool `json:"elevator"`
	Furnished   bool `json:"furnished"`
	Concierge   bool `json:"concierge"`
	PetFriendly bool `json:"pet_friendly"`

	// Free-form extra features entered by the admin (label/value pairs)
	Extras datatypes.JSON `json:"extras"`

	// Publication state
	Active   bool `json:"active" gorm:"default:true;index"`
	Featured bool `json:"featured" gorm:"default:false"`

	Images []ListingImage `json:"images" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}

type ListingImage struct {
	gorm.Model
	ListingID uint   `json:"listing_id" gorm:"index"`
	URL       string `json:"url" gorm:"not null"`
	IsCover   bool   `json:"is_cover" gorm:"default:false"`
	Order     int    `json:"order" gorm:"column:display_order;default:0"`

	Listing Listing `json:"-" gorm:"foreignKey:ListingID"`
}

// Normalize enforces the cross-field invariants before persistence:
// the rental price only exists for "both" transactions, and land parcels
// carry no room counts.
func (l *Listing) Normalize() {
	if l.Transaction != TransactionBoth {
		l.RentalPrice = 0
	}
	if l.Category == CategoryLand {
		l.Bedrooms = 0
		l.Bathrooms = 0
		l.Suites = 0
		l.GarageSpaces = 0
	} else {
		l.Dimensions = ""
		l.Topography = ""
		l.Zoning = ""
	}
}

// CoverURL returns the cover image URL, falling back to the first image.
func (l *Listing) CoverURL() string {
	for _, img := range l.Images {
		if img.IsCover {
			return img.URL
		}
	}
	if len(l.Images) > 0 {
		return l.Images[0].URL
	}
	return ""
}

// BeforeCreate generates the URL slug from the title. Duplicate titles
// get a random suffix so the unique index never rejects them.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.Slug == "" {
		s := slug.Make(l.Title)

		var count int64
		tx.Model(&Listing{}).Where("slug = ?", s).Count(&count)
		if count > 0 {
			s = s + "-" + uuid.NewString()[:8]
		}

		l.Slug = s
	}
	return nil
}
