package order

import (
	"github.com/gofiber/fiber/v2"

	"freshcart-backend/internal/auth"
	"freshcart-backend/internal/database"
	"freshcart-backend/internal/models"
)

type OrderSummary struct {
	ID         uint    `json:"id"`
	OrderUID   string  `json:"order_uid"`
	Invoice    string  `json:"invoice"`
	Status     string  `json:"status"`
	StoreName  string  `json:"store_name"`
	TotalPrice float64 `json:"total_price"`
	CreatedAt  string  `json:"created_at"`
}

type OrderDetailLine struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	SubTotal    float64 `json:"sub_total"`
}

type OrderDetailResponse struct {
	OrderSummary
	CourierPrice float64           `json:"courier_price"`
	Courier      string            `json:"courier"`
	Note         string            `json:"note"`
	Address      *string           `json:"address"`
	Items        []OrderDetailLine `json:"items"`
}

func summarize(o models.Order) OrderSummary {
	return OrderSummary{
		ID:         o.ID,
		OrderUID:   o.OrderUID,
		Invoice:    o.Invoice,
		Status:     string(o.Status),
		StoreName:  o.Store.Name,
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func detail(o models.Order) OrderDetailResponse {
	res := OrderDetailResponse{
		OrderSummary: summarize(o),
		CourierPrice: o.CourierPrice,
		Courier:      o.Expedition.DisplayName,
		Note:         o.Note,
	}
	if o.Address != nil {
		res.Address = &o.Address.Address
	}
	res.Items = make([]OrderDetailLine, 0, len(o.Details))
	for _, d := range o.Details {
		res.Items = append(res.Items, OrderDetailLine{
			ProductID:   d.ProductID,
			ProductName: d.Product.Name,
			Quantity:    d.Quantity,
			Price:       d.Price,
			SubTotal:    d.SubTotal,
		})
	}
	return res
}

// GET /api/orders
// Customer's own orders, newest first.
func ListMyOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var orders []models.Order
		if err := database.DB.
			Preload("Store").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Orders could not be listed")
		}

		res := make([]OrderSummary, 0, len(orders))
		for _, o := range orders {
			res = append(res, summarize(o))
		}
		return c.JSON(res)
	}
}

// GET /api/orders/:uid
func GetMyOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		uid := c.Params("uid")

		var order models.Order
		if err := database.DB.
			Preload("Store").
			Preload("Expedition").
			Preload("Address").
			Preload("Details.Product").
			Where("order_uid = ? AND user_id = ?", uid, userID).
			First(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		return c.JSON(detail(order))
	}
}

// GET /api/manage/orders?status=
// Orders of the acting admin's store; super admins see every store.
func ListStoreOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole)

		q := database.DB.Preload("Store").Order("created_at DESC")

		if role == models.RoleStoreAdmin {
			storeID := auth.CurrentStoreID(c)
			if storeID == nil {
				return fiber.NewError(fiber.StatusForbidden, "Store admin has no store assignment")
			}
			q = q.Where("store_id = ?", *storeID)
		} else if v := c.QueryInt("store_id"); v > 0 {
			q = q.Where("store_id = ?", v)
		}

		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}

		var orders []models.Order
		if err := q.Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Orders could not be listed")
		}

		res := make([]OrderSummary, 0, len(orders))
		for _, o := range orders {
			res = append(res, summarize(o))
		}
		return c.JSON(res)
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// allowedTransitions: forward-only lifecycle plus cancellation before
// shipping.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPendingPayment: {models.OrderStatusProcessed, models.OrderStatusCancelled},
	models.OrderStatusProcessed:      {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:        {models.OrderStatusDelivered},
}

// PUT /api/manage/orders/:id/status
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var order models.Order
		if err := database.DB.First(&order, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}

		role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
		if role == models.RoleStoreAdmin {
			storeID := auth.CurrentStoreID(c)
			if storeID == nil || *storeID != order.StoreID {
				return fiber.NewError(fiber.StatusForbidden, "Order belongs to another store")
			}
		}

		var body UpdateStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		next := models.OrderStatus(body.Status)
		valid := false
		for _, allowed := range allowedTransitions[order.Status] {
			if allowed == next {
				valid = true
				break
			}
		}
		if !valid {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid status transition")
		}

		order.Status = next
		if err := database.DB.Save(&order).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Order status could not be updated")
		}

		return c.JSON(fiber.Map{
			"id":     order.ID,
			"status": order.Status,
		})
	}
}
