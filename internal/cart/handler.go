package cart

import (
	"github.com/gofiber/fiber/v2"

	"freshcart-backend/internal/auth"
	"freshcart-backend/internal/database"
	"freshcart-backend/internal/models"
)

type AddItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	SubTotal    float64 `json:"sub_total"`
}

// POST /api/cart/items
// Adding an already-carted product accumulates its quantity.
func AddItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ProductID == 0 || body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id and a positive quantity are required")
		}

		var product models.Product
		if err := database.DB.First(&product, "id = ? AND is_active = ?", body.ProductID, true).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Product not found")
		}

		var item models.CartItem
		err = database.DB.Where("user_id = ? AND product_id = ?", userID, body.ProductID).First(&item).Error
		if err == nil {
			item.Quantity += body.Quantity
			if err := database.DB.Save(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Cart could not be updated")
			}
		} else {
			item = models.CartItem{
				UserID:    userID,
				ProductID: body.ProductID,
				Quantity:  body.Quantity,
			}
			if err := database.DB.Create(&item).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Cart item could not be created")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(CartItemResponse{
			ID:          item.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			Price:       product.Price,
			Quantity:    item.Quantity,
			SubTotal:    product.Price * float64(item.Quantity),
		})
	}
}

// GET /api/cart
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var items []models.CartItem
		if err := database.DB.
			Preload("Product").
			Where("user_id = ?", userID).
			Order("created_at").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cart could not be listed")
		}

		res := make([]CartItemResponse, 0, len(items))
		var total float64
		for _, item := range items {
			subTotal := item.Product.Price * float64(item.Quantity)
			total += subTotal
			res = append(res, CartItemResponse{
				ID:          item.ID,
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Unit:        item.Product.Unit,
				Price:       item.Product.Price,
				Quantity:    item.Quantity,
				SubTotal:    subTotal,
			})
		}

		return c.JSON(fiber.Map{
			"items": res,
			"total": total,
		})
	}
}

// PUT /api/cart/items/:id
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		var item models.CartItem
		if err := database.DB.First(&item, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cart item not found")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity must be positive, delete the item to remove it")
		}

		item.Quantity = body.Quantity
		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cart item could not be updated")
		}

		return c.JSON(fiber.Map{
			"id":       item.ID,
			"quantity": item.Quantity,
		})
	}
}

// DELETE /api/cart/items/:id
func DeleteItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		id := c.Params("id")

		res := database.DB.Delete(&models.CartItem{}, "id = ? AND user_id = ?", id, userID)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cart item could not be deleted")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Cart item not found")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/cart
func ClearHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		if err := database.DB.Delete(&models.CartItem{}, "user_id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Cart could not be cleared")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
