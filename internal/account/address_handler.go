package account

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"freshcart-backend/internal/auth"
	"freshcart-backend/internal/database"
	"freshcart-backend/internal/models"
)

type AddressRequest struct {
	Label     string  `json:"label"`
	Address   string  `json:"address"`
	CityID    uint    `json:"city_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsPrimary bool    `json:"is_primary"`
}

type AddressResponse struct {
	ID        uint    `json:"id"`
	Label     string  `json:"label"`
	Address   string  `json:"address"`
	CityID    uint    `json:"city_id"`
	City      string  `json:"city"`
	Province  string  `json:"province"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsPrimary bool    `json:"is_primary"`
}

func addressToResponse(a models.UserAddress) AddressResponse {
	return AddressResponse{
		ID:        a.ID,
		Label:     a.Label,
		Address:   a.Address,
		CityID:    a.CityID,
		City:      a.City.Name,
		Province:  a.City.Province.Name,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		IsPrimary: a.IsPrimary,
	}
}

// POST /api/addresses
func CreateAddressHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body AddressRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Address = strings.TrimSpace(body.Address)
		if body.Address == "" || body.CityID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Address and city_id are required")
		}

		var city models.City
		if err := database.DB.Preload("Province").First(&city, body.CityID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "City not found")
		}

		address := models.UserAddress{
			UserID:    userID,
			Label:     strings.TrimSpace(body.Label),
			Address:   body.Address,
			CityID:    body.CityID,
			Latitude:  body.Latitude,
			Longitude: body.Longitude,
			IsPrimary: body.IsPrimary,
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if body.IsPrimary {
				if err := tx.Model(&models.UserAddress{}).
					Where("user_id = ?", userID).
					Update("is_primary", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Address could not be created")
		}
		address.City = city

		return c.Status(fiber.StatusCreated).JSON(addressToResponse(address))
	}
}

// GET /api/addresses
func ListAddressesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var addresses []models.UserAddress
		if err := database.DB.
			Preload("City.Province").
			Where("user_id = ?", userID).
			Order("is_primary DESC, id").
			Find(&addresses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Addresses could not be listed")
		}

		res := make([]AddressResponse, 0, len(addresses))
		for _, a := range addresses {
			res = append(res, addressToResponse(a))
		}

		return c.JSON(res)
	}
}

// PUT /api/addresses/:id
func UpdateAddressHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var address models.UserAddress
		if err := database.DB.First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Address not found")
		}

		var body AddressRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Address = strings.TrimSpace(body.Address)
		if body.Address == "" || body.CityID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Address and city_id are required")
		}
		if _, err := cityExists(body.CityID); err != nil {
			return err
		}

		address.Label = strings.TrimSpace(body.Label)
		address.Address = body.Address
		address.CityID = body.CityID
		address.Latitude = body.Latitude
		address.Longitude = body.Longitude

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if body.IsPrimary && !address.IsPrimary {
				if err := tx.Model(&models.UserAddress{}).
					Where("user_id = ?", userID).
					Update("is_primary", false).Error; err != nil {
					return err
				}
			}
			address.IsPrimary = body.IsPrimary
			return tx.Save(&address).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Address could not be updated")
		}

		database.DB.Preload("City.Province").First(&address, address.ID)
		return c.JSON(addressToResponse(address))
	}
}

// DELETE /api/addresses/:id
func DeleteAddressHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		res := database.DB.Delete(&models.UserAddress{}, "id = ? AND user_id = ?", id, userID)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Address could not be deleted")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Address not found")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func cityExists(cityID uint) (models.City, error) {
	var city models.City
	if err := database.DB.First(&city, cityID).Error; err != nil {
		return city, fiber.NewError(fiber.StatusBadRequest, "City not found")
	}
	return city, nil
}
