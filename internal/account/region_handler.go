package account

import (
	"github.com/gofiber/fiber/v2"

	"freshcart-backend/internal/database"
	"freshcart-backend/internal/models"
)

// GET /api/regions/provinces
func ListProvincesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var provinces []models.Province
		if err := database.DB.Order("name").Find(&provinces).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Provinces could not be listed")
		}
		return c.JSON(provinces)
	}
}

// GET /api/regions/cities?province_id=
func ListCitiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.Order("name")
		if v := c.QueryInt("province_id"); v > 0 {
			q = q.Where("province_id = ?", v)
		}

		var cities []models.City
		if err := q.Find(&cities).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cities could not be listed")
		}
		return c.JSON(cities)
	}
}
