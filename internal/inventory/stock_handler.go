package inventory

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freshcart-backend/internal/auth"
	"freshcart-backend/internal/database"
	"freshcart-backend/internal/models"
)

type SetStockRequest struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
	StoreID   *uint  `json:"store_id"` // super_admin only, admins use their own store
}

type StockResponse struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Unit        string `json:"unit"`
	StoreID     uint   `json:"store_id"`
	Quantity    int    `json:"quantity"`
}

// resolveStoreID picks the acting store: store admins are pinned to their
// assignment, super admins must name one explicitly.
func resolveStoreID(c *fiber.Ctx, bodyStoreID *uint) (uint, error) {
	role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole)

	if role == models.RoleStoreAdmin {
		if ptr := auth.CurrentStoreID(c); ptr != nil {
			return *ptr, nil
		}
		return 0, fiber.NewError(fiber.StatusForbidden, "Store admin has no store assignment")
	}

	if bodyStoreID == nil || *bodyStoreID == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "store_id is required")
	}
	return *bodyStoreID, nil
}

// GET /api/manage/stock?store_id=
func ListStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var bodyStoreID *uint
		if v := c.QueryInt("store_id"); v > 0 {
			id := uint(v)
			bodyStoreID = &id
		}

		storeID, err := resolveStoreID(c, bodyStoreID)
		if err != nil {
			return err
		}

		var stocks []models.StoreProduct
		if err := database.DB.
			Preload("Product").
			Where("store_id = ?", storeID).
			Order("product_id").
			Find(&stocks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stock could not be listed")
		}

		res := make([]StockResponse, 0, len(stocks))
		for _, s := range stocks {
			res = append(res, StockResponse{
				ProductID:   s.ProductID,
				ProductName: s.Product.Name,
				Unit:        s.Product.Unit,
				StoreID:     s.StoreID,
				Quantity:    s.Quantity,
			})
		}

		return c.JSON(res)
	}
}

// POST /api/manage/stock
// Sets the absolute stock level and records the delta in the adjustment
// ledger.
func SetStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SetStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.ProductID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "product_id is required")
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity cannot be negative")
		}

		storeID, err := resolveStoreID(c, body.StoreID)
		if err != nil {
			return err
		}

		adminID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var store models.Store
		if err := database.DB.First(&store, storeID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Store not found (ID: %d)", storeID))
		}
		var product models.Product
		if err := database.DB.First(&product, body.ProductID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Product not found")
		}

		var newQty int
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var stock models.StoreProduct
			res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("store_id = ? AND product_id = ?", storeID, body.ProductID).
				First(&stock)
			if res.Error != nil {
				if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
					return res.Error
				}
				stock = models.StoreProduct{StoreID: storeID, ProductID: body.ProductID}
			}

			delta := body.Quantity - stock.Quantity
			stock.Quantity = body.Quantity
			if err := tx.Save(&stock).Error; err != nil {
				return err
			}
			newQty = stock.Quantity

			if delta == 0 {
				return nil
			}
			adjustment := models.StockAdjustment{
				StoreID:     storeID,
				ProductID:   body.ProductID,
				AdminID:     adminID,
				QtyChange:   delta,
				Type:        models.AdjustmentTypeManual,
				Description: body.Note,
			}
			return tx.Create(&adjustment).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stock could not be updated")
		}

		return c.JSON(StockResponse{
			ProductID:   product.ID,
			ProductName: product.Name,
			Unit:        product.Unit,
			StoreID:     storeID,
			Quantity:    newQty,
		})
	}
}

// GET /api/manage/stock-adjustments?store_id=&product_id=
func ListStockAdjustmentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var bodyStoreID *uint
		if v := c.QueryInt("store_id"); v > 0 {
			id := uint(v)
			bodyStoreID = &id
		}

		storeID, err := resolveStoreID(c, bodyStoreID)
		if err != nil {
			return err
		}

		q := database.DB.
			Preload("Product").
			Where("store_id = ?", storeID)
		if v := c.QueryInt("product_id"); v > 0 {
			q = q.Where("product_id = ?", v)
		}

		var adjustments []models.StockAdjustment
		if err := q.Order("created_at DESC").Limit(200).Find(&adjustments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Adjustments could not be listed")
		}

		return c.JSON(adjustments)
	}
}
