package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"imovia_backend/internal/authz"
	"imovia_backend/internal/favorites"
	"imovia_backend/internal/middleware"
	"imovia_backend/internal/model"
	"imovia_backend/pkg/cache"
	"imovia_backend/pkg/database"
	"imovia_backend/pkg/utils/jwt"
	"imovia_backend/pkg/utils/validation"
)

func setupTestApp(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}

	db.AutoMigrate(
		&model.User{},
		&model.LoginHistory{},
		&model.Listing{},
		&model.ListingImage{},
		&model.ListingView{},
		&model.ListingStats{},
		&model.Favorite{},
		&model.Lead{},
	)
	database.SetDB(db)

	listingCache := cache.NewListingCache(time.Minute)
	t.Cleanup(listingCache.Stop)
	InitListingController(listingCache)

	sessionStore := favorites.NewSessionStore(time.Minute)
	t.Cleanup(sessionStore.Stop)
	InitFavoriteController(favorites.NewAccountStore(db), sessionStore)

	app := fiber.New()

	api := app.Group("/api")
	api.Get("/listings", ListListings)
	api.Get("/listings/:id", middleware.OptionalAuth(), GetListing)

	favs := api.Group("/favorites", middleware.OptionalAuth())
	favs.Get("/", ListFavorites)
	favs.Post("/:listing_id/toggle", ToggleFavorite)

	isAdmin := authz.RoleIs(string(model.RoleAdmin))
	admin := api.Group("/admin", middleware.AuthMiddleware(), middleware.RequireAdmin(isAdmin))
	admin.Post("/listings", CreateListing)
	admin.Put("/listings/:id", UpdateListing)
	admin.Delete("/listings/:id", DeleteListing)

	return app
}

func createListing(t *testing.T, title string, price float64, active bool) model.Listing {
	l := model.Listing{
		Title:        title,
		Transaction:  model.TransactionSale,
		Category:     model.CategoryProperty,
		Price:        price,
		Address:      "Rua Teste, 1",
		Neighborhood: "Centro",
		City:         "Curitiba",
		Bedrooms:     3,
		Active:       active,
	}
	if err := database.GetDB().Create(&l).Error; err != nil {
		t.Fatalf("could not create listing fixture: %v", err)
	}
	return l
}

func adminToken(t *testing.T) string {
	token, err := jwt.GenerateToken(1, "admin@imovia.com.br", string(model.RoleAdmin))
	if err != nil {
		t.Fatalf("could not generate admin token: %v", err)
	}
	return token
}

func userToken(t *testing.T, id uint) string {
	token, err := jwt.GenerateToken(id, "user@example.com", string(model.RoleUser))
	if err != nil {
		t.Fatalf("could not generate user token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, headers map[string]string) *http.Response {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("could not marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	return out
}

func TestListListings_ExcludesDrafts(t *testing.T) {
	app := setupTestApp(t)
	createListing(t, "Casa Residencial no Centro", 350000, true)
	createListing(t, "Rascunho Interno", 200000, false)

	resp := doJSON(t, app, http.MethodGet, "/api/listings", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if total := body["total"].(float64); total != 1 {
		t.Errorf("total = %v, want 1 (draft must be excluded)", total)
	}
}

func TestListListings_AppliesQueryFilters(t *testing.T) {
	app := setupTestApp(t)
	createListing(t, "Casa Grande", 500000, true)
	createListing(t, "Casa Pequena", 150000, true)

	resp := doJSON(t, app, http.MethodGet, "/api/listings?q=casa&max_price=200000", nil, nil)
	body := decodeBody(t, resp)

	if total := body["total"].(float64); total != 1 {
		t.Errorf("total = %v, want 1", total)
	}
}

func TestGetListing_ImagesFollowDisplayOrder(t *testing.T) {
	app := setupTestApp(t)
	l := createListing(t, "Casa com Fotos", 400000, true)

	for _, img := range []model.ListingImage{
		{ListingID: l.ID, URL: "https://img/second.jpg", Order: 1},
		{ListingID: l.ID, URL: "https://img/first.jpg", Order: 0, IsCover: true},
		{ListingID: l.ID, URL: "https://img/third.jpg", Order: 2},
	} {
		if err := database.GetDB().Create(&img).Error; err != nil {
			t.Fatalf("could not create image fixture: %v", err)
		}
	}

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/listings/%d", l.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	images := body["listing"].(map[string]interface{})["images"].([]interface{})
	if len(images) != 3 {
		t.Fatalf("images = %d, want 3", len(images))
	}
	for i, want := range []string{"https://img/first.jpg", "https://img/second.jpg", "https://img/third.jpg"} {
		if got := images[i].(map[string]interface{})["url"]; got != want {
			t.Errorf("images[%d].url = %v, want %s", i, got, want)
		}
	}
}

func TestGetListing_NotFound(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/listings/999", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetListing_RecordsView(t *testing.T) {
	app := setupTestApp(t)
	l := createListing(t, "Casa Vista", 300000, true)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/listings/%d", l.ID), nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	var views int64
	database.GetDB().Model(&model.ListingView{}).
		Where("listing_id = ?", l.ID).
		Count(&views)
	if views != 1 {
		t.Errorf("recorded views = %d, want 1", views)
	}
}

func validListingPayload() validation.ListingInput {
	return validation.ListingInput{
		Title:        "Apartamento Novo",
		Transaction:  model.TransactionSale,
		Category:     model.CategoryProperty,
		Price:        420000,
		Address:      "Av. Batel, 1000",
		Neighborhood: "Batel",
		City:         "Curitiba",
		Bedrooms:     2,
		Active:       true,
		Images:       []string{"https://imovia-images.s3.sa-east-1.amazonaws.com/listings/0/a.jpg"},
	}
}

func TestCreateListing_RequiresAdmin(t *testing.T) {
	app := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/listings", validListingPayload(), nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/admin/listings", validListingPayload(), map[string]string{
		"Authorization": "Bearer " + userToken(t, 2),
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("non-admin: status = %d, want 403", resp.StatusCode)
	}
}

func TestCreateListing_CollectsAllViolations(t *testing.T) {
	app := setupTestApp(t)

	payload := validation.ListingInput{
		Transaction: model.TransactionSale,
		Category:    model.CategoryProperty,
	}
	resp := doJSON(t, app, http.MethodPost, "/api/admin/listings", payload, map[string]string{
		"Authorization": "Bearer " + adminToken(t),
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	errs := body["errors"].([]interface{})
	if len(errs) != 5 {
		t.Errorf("violations = %d, want 5: %v", len(errs), errs)
	}
}

func TestCreateListing_LandWithoutDimensionsRejected(t *testing.T) {
	app := setupTestApp(t)

	payload := validListingPayload()
	payload.Category = model.CategoryLand
	payload.AreaSqM = 450
	payload.Dimensions = ""

	resp := doJSON(t, app, http.MethodPost, "/api/admin/listings", payload, map[string]string{
		"Authorization": "Bearer " + adminToken(t),
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	errs := body["errors"].([]interface{})
	if len(errs) != 1 || errs[0] != validation.MsgDimensionsRequired {
		t.Errorf("errors = %v, want only the dimensions violation", errs)
	}
}

func TestCreateListing_NormalizesRentalPrice(t *testing.T) {
	app := setupTestApp(t)

	payload := validListingPayload()
	payload.Transaction = model.TransactionSale
	payload.RentalPrice = 9999

	resp := doJSON(t, app, http.MethodPost, "/api/admin/listings", payload, map[string]string{
		"Authorization": "Bearer " + adminToken(t),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	resp.Body.Close()

	var saved model.Listing
	database.GetDB().Where("title = ?", payload.Title).First(&saved)
	if saved.RentalPrice != 0 {
		t.Errorf("RentalPrice = %v after sale-only create, want 0", saved.RentalPrice)
	}
}

func TestCreateListing_InvalidatesCache(t *testing.T) {
	app := setupTestApp(t)
	createListing(t, "Primeira", 100000, true)

	// Warm the cache.
	resp := doJSON(t, app, http.MethodGet, "/api/listings", nil, nil)
	if body := decodeBody(t, resp); body["total"].(float64) != 1 {
		t.Fatalf("warm read total = %v, want 1", body["total"])
	}

	resp = doJSON(t, app, http.MethodPost, "/api/admin/listings", validListingPayload(), map[string]string{
		"Authorization": "Bearer " + adminToken(t),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/listings", nil, nil)
	if body := decodeBody(t, resp); body["total"].(float64) != 2 {
		t.Errorf("post-create read total = %v, want 2 (cache must be invalidated)", body["total"])
	}
}

func TestToggleFavorite_AnonymousSession(t *testing.T) {
	app := setupTestApp(t)
	l := createListing(t, "Favorita", 250000, true)

	headers := map[string]string{"X-Session-Token": "anon-session-1"}
	path := fmt.Sprintf("/api/favorites/%d/toggle", l.ID)

	body := decodeBody(t, doJSON(t, app, http.MethodPost, path, nil, headers))
	if body["favorited"] != true || body["count"].(float64) != 1 {
		t.Errorf("first toggle = %v, want favorited with count 1", body)
	}

	body = decodeBody(t, doJSON(t, app, http.MethodPost, path, nil, headers))
	if body["favorited"] != false || body["count"].(float64) != 0 {
		t.Errorf("second toggle = %v, want unfavorited with count 0", body)
	}
}

func TestToggleFavorite_MissingSessionToken(t *testing.T) {
	app := setupTestApp(t)
	l := createListing(t, "Sem Sessão", 250000, true)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/favorites/%d/toggle", l.ID), nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestListFavorites_ResolvesFullListings(t *testing.T) {
	app := setupTestApp(t)
	l1 := createListing(t, "Primeira Favorita", 250000, true)
	l2 := createListing(t, "Segunda Favorita", 300000, true)

	headers := map[string]string{"Authorization": "Bearer " + userToken(t, 5)}

	doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/favorites/%d/toggle", l1.ID), nil, headers).Body.Close()
	doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/favorites/%d/toggle", l2.ID), nil, headers).Body.Close()

	body := decodeBody(t, doJSON(t, app, http.MethodGet, "/api/favorites/", nil, headers))
	if body["count"].(float64) != 2 {
		t.Fatalf("count = %v, want 2", body["count"])
	}

	listings := body["listings"].([]interface{})
	if len(listings) != 2 {
		t.Fatalf("resolved listings = %d, want 2", len(listings))
	}
	first := listings[0].(map[string]interface{})
	if first["title"] != "Primeira Favorita" {
		t.Errorf("first favorite title = %v, want insertion order kept", first["title"])
	}
}

func TestFavorites_AnonymousAndAccountDoNotMerge(t *testing.T) {
	app := setupTestApp(t)
	l := createListing(t, "Isolada", 250000, true)

	anonHeaders := map[string]string{"X-Session-Token": "anon-session-2"}
	doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/favorites/%d/toggle", l.ID), nil, anonHeaders).Body.Close()

	// Logging in starts from the account's own favorites; the anonymous
	// set is not carried over.
	authHeaders := map[string]string{"Authorization": "Bearer " + userToken(t, 9)}
	body := decodeBody(t, doJSON(t, app, http.MethodGet, "/api/favorites/", nil, authHeaders))
	if body["count"].(float64) != 0 {
		t.Errorf("account favorites count = %v after anonymous toggle, want 0", body["count"])
	}
}

func TestDeleteListing(t *testing.T) {
	app := setupTestApp(t)
	l := createListing(t, "Para Remover", 100000, true)

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/listings/%d", l.ID), nil, map[string]string{
		"Authorization": "Bearer " + adminToken(t),
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/listings/%d", l.ID), nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("deleted listing still reachable: status = %d", resp.StatusCode)
	}
}

func TestDeleteListing_RemovesImageRows(t *testing.T) {
	app := setupTestApp(t)
	l := createListing(t, "Com Imagens", 100000, true)

	for i, url := range []string{"https://img/a.jpg", "https://img/b.jpg"} {
		img := model.ListingImage{ListingID: l.ID, URL: url, Order: i, IsCover: i == 0}
		if err := database.GetDB().Create(&img).Error; err != nil {
			t.Fatalf("could not create image fixture: %v", err)
		}
	}

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/listings/%d", l.ID), nil, map[string]string{
		"Authorization": "Bearer " + adminToken(t),
	})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	var remaining int64
	database.GetDB().Unscoped().Model(&model.ListingImage{}).
		Where("listing_id = ?", l.ID).
		Count(&remaining)
	if remaining != 0 {
		t.Errorf("image rows after delete = %d, want 0 (they count toward the upload cap)", remaining)
	}
}
