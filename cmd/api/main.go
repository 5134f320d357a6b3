package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"imovia_backend/internal/authz"
	"imovia_backend/internal/controller"
	"imovia_backend/internal/favorites"
	"imovia_backend/internal/middleware"
	"imovia_backend/internal/model"
	"imovia_backend/pkg/cache"
	"imovia_backend/pkg/config"
	"imovia_backend/pkg/cron"
	"imovia_backend/pkg/database"
	"imovia_backend/pkg/email"
	"imovia_backend/pkg/seed"
	"imovia_backend/pkg/utils/jwt"
	"imovia_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App, isAdmin authz.Predicate) {
	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", controller.Register)
	auth.Post("/login", controller.Login)
	auth.Post("/request-reset", controller.RequestPasswordReset)
	auth.Post("/reset-password", controller.ResetPassword)

	// Public listing routes
	listings := api.Group("/listings")
	listings.Get("/", controller.ListListings)
	listings.Get("/:id", middleware.OptionalAuth(), controller.GetListing)
	listings.Post("/:listing_id/leads", controller.CreateLead)

	// Locations for the filter dropdowns
	api.Get("/locations", controller.GetLocations)

	// Favorites, anonymous or authenticated
	favs := api.Group("/favorites", middleware.OptionalAuth())
	favs.Get("/", controller.ListFavorites)
	favs.Get("/:listing_id", controller.CheckFavorite)
	favs.Post("/:listing_id/toggle", controller.ToggleFavorite)

	// Protected routes
	protected := api.Group("/", middleware.AuthMiddleware())
	protected.Get("/me", controller.GetMe)

	// Admin area
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin(isAdmin))
	admin.Get("/listings", controller.ListAllListings)
	admin.Post("/listings", controller.CreateListing)
	admin.Put("/listings/:id", controller.UpdateListing)
	admin.Delete("/listings/:id", controller.DeleteListing)
	admin.Post("/uploads", controller.UploadListingImage)
	admin.Delete("/images/:image_id", controller.DeleteListingImage)
	admin.Get("/stats", controller.GetDashboardStats)
	admin.Get("/leads", controller.GetLeads)
	admin.Put("/leads/:id/status", controller.UpdateLeadStatus)
	admin.Put("/leads/:id/read", controller.MarkLeadAsRead)
}

func main() {
	cfg := config.Load()

	jwt.Init(cfg.JWT.Secret)

	if cfg.Email.APIKey != "" {
		if err := email.InitEmailService(cfg.Email.APIKey, cfg.Email.From); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	}

	if err := storage.InitStorage(cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
		log.Fatal("Could not initialize storage:", err)
	}

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.LoginHistory{},
		&model.Listing{},
		&model.ListingImage{},
		&model.ListingView{},
		&model.ListingStats{},
		&model.Favorite{},
		&model.Lead{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	seed.SeedAdminUser(database.GetDB(), cfg.Admin.Email)
	if os.Getenv("SEED_SAMPLE_DATA") == "true" {
		seed.SeedListings(database.GetDB())
	}

	listingCache := cache.NewListingCache(cfg.Cache.ListingTTL)
	controller.InitListingController(listingCache)
	controller.InitFavoriteController(
		favorites.NewAccountStore(database.GetDB()),
		favorites.NewSessionStore(cfg.Cache.SessionTTL),
	)
	controller.InitLeadController(cfg.Admin.Email)

	cron.InitViewStatsCron()

	// Role claim is the primary strategy; the static identity keeps old
	// tokens working.
	isAdmin := authz.Any(
		authz.RoleIs(string(model.RoleAdmin)),
		authz.StaticEmail(cfg.Admin.Email),
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, isAdmin)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
