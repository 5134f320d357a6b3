package validation

import (
	"imovia_backend/internal/model"
)

// Violation messages mirror the product copy shown in the admin form.
const (
	MsgTitleRequired        = "O título é obrigatório"
	MsgPriceRequired        = "O preço deve ser maior que zero"
	MsgRentalPriceRequired  = "O valor do aluguel é obrigatório para venda e aluguel"
	MsgAddressRequired      = "O endereço é obrigatório"
	MsgNeighborhoodRequired = "O bairro é obrigatório"
	MsgDimensionsRequired   = "Dimensões do terreno são obrigatórias"
	MsgAreaRequired         = "A área do terreno deve ser maior que zero"
	MsgImageRequired        = "Adicione pelo menos uma imagem"
)

// ListingInput is the candidate record collected from the admin form,
// before it becomes a model.Listing.
type ListingInput struct {
	Title       string                `json:"title"`
	Transaction model.TransactionType `json:"transaction"`
	Category    model.Category        `json:"category"`
	Description string                `json:"description"`

	Price       float64 `json:"price"`
	RentalPrice float64 `json:"rental_price"`

	Address      string  `json:"address"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`

	AreaSqM      float64 `json:"area_sq_m"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	Suites       int     `json:"suites"`
	GarageSpaces int     `json:"garage_spaces"`

	Dimensions string           `json:"dimensions"`
	Topography model.Topography `json:"topography"`
	Zoning     model.Zoning     `json:"zoning"`

	Pool        bool `json:"pool"`
	Barbecue    bool `json:"barbecue"`
	Elevator    bool `json:"elevator"`
	Furnished   bool `json:"furnished"`
	Concierge   bool `json:"concierge"`
	PetFriendly bool `json:"pet_friendly"`

	Extras map[string]string `json:"extras"`

	Active   bool `json:"active"`
	Featured bool `json:"featured"`

	// Images as persisted URLs kept from edit mode; newly staged files
	// arrive through the upload endpoint before submission.
	Images []string `json:"images"`
}

// ValidateListing evaluates every rule and returns the full list of
// violations. It never fails fast; an empty result means the input is
// acceptable.
func ValidateListing(input ListingInput) []string {
	var violations []string

	if input.Title == "" {
		violations = append(violations, MsgTitleRequired)
	}
	if input.Price <= 0 {
		violations = append(violations, MsgPriceRequired)
	}
	if input.Transaction == model.TransactionBoth && input.RentalPrice <= 0 {
		violations = append(violations, MsgRentalPriceRequired)
	}
	if input.Address == "" {
		violations = append(violations, MsgAddressRequired)
	}
	if input.Neighborhood == "" {
		violations = append(violations, MsgNeighborhoodRequired)
	}
	if input.Category == model.CategoryLand {
		if input.Dimensions == "" {
			violations = append(violations, MsgDimensionsRequired)
		}
		if input.AreaSqM <= 0 {
			violations = append(violations, MsgAreaRequired)
		}
	}
	if len(input.Images) == 0 {
		violations = append(violations, MsgImageRequired)
	}

	return violations
}
