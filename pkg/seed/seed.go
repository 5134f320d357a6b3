package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"imovia_backend/internal/model"
)

// SeedAdminUser creates the administrator account if none exists.
func SeedAdminUser(db *gorm.DB, adminEmail string) {
	if adminEmail == "" {
		return
	}

	var count int64
	db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Could not hash seed admin password: %v", err)
		return
	}

	admin := model.User{
		Email:     adminEmail,
		Password:  string(hashed),
		Role:      model.RoleAdmin,
		FirstName: "Admin",
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Could not seed admin user: %v", err)
		return
	}

	log.Printf("Seeded admin user %s (change the default password)", adminEmail)
}

// SeedListings inserts sample listings for development environments.
func SeedListings(db *gorm.DB) {
	var count int64
	db.Model(&model.Listing{}).Count(&count)
	if count > 0 {
		return
	}

	listings := []model.Listing{
		{
			Title:        "Casa Residencial no Centro",
			Transaction:  model.TransactionSale,
			Category:     model.CategoryProperty,
			Description:  "Casa ampla com quintal, próxima a comércio e escolas.",
			Price:        350000,
			Address:      "Rua das Flores, 123",
			Neighborhood: "Centro",
			City:         "Curitiba",
			AreaSqM:      180,
			Bedrooms:     3,
			Bathrooms:    2,
			Suites:       1,
			GarageSpaces: 2,
			Barbecue:     true,
			PetFriendly:  true,
			Active:       true,
			Featured:     true,
		},
		{
			Title:        "Apartamento Mobiliado",
			Transaction:  model.TransactionBoth,
			Category:     model.CategoryProperty,
			Description:  "Apartamento pronto para morar, com elevador e portaria 24h.",
			Price:        420000,
			RentalPrice:  2200,
			Address:      "Av. Sete de Setembro, 450",
			Neighborhood: "Batel",
			City:         "Curitiba",
			AreaSqM:      75,
			Bedrooms:     2,
			Bathrooms:    1,
			GarageSpaces: 1,
			Elevator:     true,
			Furnished:    true,
			Concierge:    true,
			Active:       true,
		},
		{
			Title:        "Terreno Plano Residencial",
			Transaction:  model.TransactionSale,
			Category:     model.CategoryLand,
			Description:  "Terreno pronto para construir, escriturado.",
			Price:        180000,
			Address:      "Rua Projetada, s/n",
			Neighborhood: "Jardim América",
			City:         "São José dos Pinhais",
			AreaSqM:      450,
			Dimensions:   "15x30",
			Topography:   model.TopographyFlat,
			Zoning:       model.ZoningResidential,
			Active:       true,
		},
	}

	for i := range listings {
		listings[i].Normalize()
		if err := db.Create(&listings[i]).Error; err != nil {
			log.Printf("Could not seed listing %q: %v", listings[i].Title, err)
		}
	}

	log.Printf("Seeded %d sample listings", len(listings))
}
