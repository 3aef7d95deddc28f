package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"freshcart-backend/internal/database"
	"freshcart-backend/internal/models"
)

type StoreResponse struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	CityID    uint    `json:"city_id"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	CreatedAt string  `json:"created_at"`
}

type CreateStoreRequest struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"` // "central" or "branch"
	CityID    uint    `json:"city_id"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type UpdateStoreRequest struct {
	Name      *string  `json:"name"`
	Address   *string  `json:"address"`
	CityID    *uint    `json:"city_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func storeToResponse(s models.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Type:      string(s.Type),
		CityID:    s.CityID,
		City:      s.City.Name,
		Province:  s.City.Province.Name,
		Address:   s.Address,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		CreatedAt: s.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/admin/stores
// A branch store requires the central store to already exist, and only
// one central store may ever be created.
func CreateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Store name is required")
		}
		if body.CityID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "city_id is required")
		}

		storeType := models.StoreType(body.Type)
		if storeType != models.StoreTypeCentral && storeType != models.StoreTypeBranch {
			return fiber.NewError(fiber.StatusBadRequest, "Store type must be 'central' or 'branch'")
		}

		var city models.City
		if err := database.DB.Preload("Province").First(&city, body.CityID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "City not found")
		}

		var centralCount int64
		database.DB.Model(&models.Store{}).
			Where("type = ?", models.StoreTypeCentral).
			Count(&centralCount)

		if storeType == models.StoreTypeCentral && centralCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "A central store already exists")
		}
		if storeType == models.StoreTypeBranch && centralCount == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Create the central store before adding branches")
		}

		store := models.Store{
			Name:      body.Name,
			Type:      storeType,
			CityID:    body.CityID,
			Address:   body.Address,
			Latitude:  body.Latitude,
			Longitude: body.Longitude,
		}

		if err := database.DB.Create(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Store could not be created")
		}
		store.City = city

		return c.Status(fiber.StatusCreated).JSON(storeToResponse(store))
	}
}

// GET /api/admin/stores
func ListStoresHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stores []models.Store
		if err := database.DB.Preload("City.Province").Order("id").Find(&stores).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stores could not be listed")
		}

		res := make([]StoreResponse, 0, len(stores))
		for _, s := range stores {
			res = append(res, storeToResponse(s))
		}

		return c.JSON(res)
	}
}

// GET /api/admin/stores/:id
func GetStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.Preload("City.Province").First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Store not found")
		}

		return c.JSON(storeToResponse(store))
	}
}

// PUT /api/admin/stores/:id
func UpdateStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Store not found")
		}

		var body UpdateStoreRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Store name cannot be empty")
			}
			store.Name = name
		}
		if body.Address != nil {
			store.Address = *body.Address
		}
		if body.CityID != nil {
			var city models.City
			if err := database.DB.First(&city, *body.CityID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "City not found")
			}
			store.CityID = *body.CityID
		}
		if body.Latitude != nil {
			store.Latitude = *body.Latitude
		}
		if body.Longitude != nil {
			store.Longitude = *body.Longitude
		}

		if err := database.DB.Save(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Store could not be updated")
		}

		database.DB.Preload("City.Province").First(&store, store.ID)
		return c.JSON(storeToResponse(store))
	}
}

// DELETE /api/admin/stores/:id
// Deleting the central store is blocked while branch stores exist.
func DeleteStoreHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Store not found")
		}

		if store.Type == models.StoreTypeCentral {
			var branchCount int64
			database.DB.Model(&models.Store{}).
				Where("type = ?", models.StoreTypeBranch).
				Count(&branchCount)
			if branchCount > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Central store cannot be deleted while branch stores exist")
			}
		}

		if err := database.DB.Delete(&store).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Store could not be deleted")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
