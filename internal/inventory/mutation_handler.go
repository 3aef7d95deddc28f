package inventory

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freshcart-backend/internal/auth"
	"freshcart-backend/internal/database"
	"freshcart-backend/internal/logging"
	"freshcart-backend/internal/models"
)

type MutationResponse struct {
	ID              uint   `json:"id"`
	ProductID       uint   `json:"product_id"`
	ProductName     string `json:"product_name"`
	Quantity        int    `json:"quantity"`
	FromStoreID     *uint  `json:"from_store_id"`
	DestinedStoreID *uint  `json:"destined_store_id"`
	MutationType    string `json:"mutation_type"`
	CreatedAt       string `json:"created_at"`
}

// GET /api/manage/mutations?status=pending
// Lists cross-store transfer adjustments created during checkout.
func ListMutationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.
			Preload("Product").
			Where("mutation_type IS NOT NULL")

		if status := c.Query("status"); status != "" {
			q = q.Where("mutation_type = ?", status)
		}
		if v := c.QueryInt("store_id"); v > 0 {
			q = q.Where("from_store_id = ? OR destined_store_id = ?", v, v)
		}

		var adjustments []models.StockAdjustment
		if err := q.Order("created_at DESC").Find(&adjustments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mutations could not be listed")
		}

		res := make([]MutationResponse, 0, len(adjustments))
		for _, a := range adjustments {
			mt := ""
			if a.MutationType != nil {
				mt = string(*a.MutationType)
			}
			res = append(res, MutationResponse{
				ID:              a.ID,
				ProductID:       a.ProductID,
				ProductName:     a.Product.Name,
				Quantity:        -a.QtyChange, // donor-side entries are negative
				FromStoreID:     a.FromStoreID,
				DestinedStoreID: a.DestinedStoreID,
				MutationType:    mt,
				CreatedAt:       a.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

// POST /api/manage/mutations/:id/complete
// Confirms the physical transfer: marks the pending adjustment completed
// and credits the destined store with a mutation_in entry.
func CompleteMutationHandler(svc *MutationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid mutation id")
		}

		adminID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		adjustment, err := svc.CompleteMutation(uint(id), adminID)
		if err != nil {
			switch {
			case errors.Is(err, ErrMutationNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Mutation not found")
			case errors.Is(err, ErrMutationNotPending):
				return fiber.NewError(fiber.StatusBadRequest, "Mutation is not pending")
			}
			logging.L.Error("mutation completion failed", zap.Int("mutation_id", id), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Mutation could not be completed")
		}

		return c.JSON(fiber.Map{
			"message":     "Mutation completed, destined store credited",
			"mutation_id": adjustment.ID,
		})
	}
}
