package checkout

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freshcart-backend/internal/auth"
	"freshcart-backend/internal/logging"
)

type StoreLocationRequest struct {
	AddressID *uint `json:"address_id"`
}

type CreateOrderRequest struct {
	CheckoutItems        []CheckoutItem `json:"checkout_items"`
	SelectedAddressID    *uint          `json:"selected_address_id"`
	StoreID              uint           `json:"store_id"`
	SelectedCourier      string         `json:"selected_courier"`
	SelectedCourierPrice float64        `json:"selected_courier_price"`
	Note                 string         `json:"note"`
}

// POST /api/checkout/store-location
func StoreLocationHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body StoreLocationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		store, err := svc.NearestStore(userID, body.AddressID)
		if err != nil {
			if errors.Is(err, ErrNoCentralStore) {
				return fiber.NewError(fiber.StatusNotFound, "No central store configured")
			}
			logging.L.Error("store resolution failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Store could not be resolved")
		}

		return c.JSON(fiber.Map{"store": store})
	}
}

// POST /api/orders/create-order
func CreateOrderHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		order, err := svc.CreateOrder(CreateOrderInput{
			UserID:       userID,
			Items:        body.CheckoutItems,
			AddressID:    body.SelectedAddressID,
			StoreID:      body.StoreID,
			Courier:      body.SelectedCourier,
			CourierPrice: body.SelectedCourierPrice,
			Note:         body.Note,
		})
		if err != nil {
			var insufficient *InsufficientStockError
			switch {
			case errors.As(err, &insufficient):
				return fiber.NewError(fiber.StatusBadRequest, insufficient.Error())
			case errors.Is(err, ErrStoreNotFound),
				errors.Is(err, ErrNoStoreAdmin),
				errors.Is(err, ErrNoExpedition),
				errors.Is(err, ErrAddressInvalid):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			// Everything validate() rejects reads as a user error too.
			if _, ok := err.(validationError); ok {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			logging.L.Error("order creation failed", zap.Uint("user_id", userID), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Order could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order})
	}
}

// GET /api/checkout/vouchers
func ListVouchersHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		vouchers, err := svc.ActiveVouchers(time.Now())
		if err != nil {
			logging.L.Error("voucher listing failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Vouchers could not be listed")
		}
		return c.JSON(fiber.Map{"vouchers": vouchers})
	}
}

// GET /api/checkout/vouchers/:id
func GetVoucherHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid voucher id")
		}

		voucher, err := svc.VoucherDetail(uint(id))
		if err != nil {
			logging.L.Error("voucher lookup failed", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Voucher could not be fetched")
		}
		if voucher == nil {
			return fiber.NewError(fiber.StatusNotFound, "Voucher not found")
		}

		return c.JSON(fiber.Map{"voucher": voucher})
	}
}
