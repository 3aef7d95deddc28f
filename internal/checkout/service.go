package checkout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freshcart-backend/internal/models"
)

var (
	ErrNoCentralStore = errors.New("no central store configured")
	ErrStoreNotFound  = errors.New("store not found")
	ErrNoStoreAdmin   = errors.New("store has no admin assigned")
	ErrNoExpedition   = errors.New("expedition not found")
	ErrAddressInvalid = errors.New("address does not belong to the user")
)

// InsufficientStockError: a checkout line could not be covered by the
// fulfilling store or any donor store in the same city. The whole order
// is rejected so inventory is never left half-adjusted.
type InsufficientStockError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d and no donor store found",
		e.ProductID, e.Requested, e.Available)
}

// fulfillmentState names the outcome of reconciling one checkout line.
type fulfillmentState int

const (
	fulfilledLocally fulfillmentState = iota
	fulfilledWithTransfer
)

type lineFulfillment struct {
	state    fulfillmentState
	donor    *models.Store
	transfer int // qty covered by the donor
}

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

type CheckoutItem struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderInput struct {
	UserID       uint
	Items        []CheckoutItem
	AddressID    *uint
	StoreID      uint
	Courier      string
	CourierPrice float64
	Note         string
}

// validationError marks request-shape problems so the handler can map
// them to a 400 instead of a generic 500.
type validationError string

func (e validationError) Error() string { return string(e) }

func (in *CreateOrderInput) validate() error {
	if in.UserID == 0 {
		return validationError("user_id is required")
	}
	if len(in.Items) == 0 {
		return validationError("at least one checkout item is required")
	}
	for _, item := range in.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return validationError("every item needs a product_id and a positive quantity")
		}
		if item.Price <= 0 {
			return validationError("every item needs a positive price")
		}
	}
	if in.StoreID == 0 {
		return validationError("store_id is required")
	}
	if in.Courier == "" {
		return validationError("selected_courier is required")
	}
	if in.CourierPrice < 0 {
		return validationError("selected_courier_price cannot be negative")
	}
	return nil
}

// CreateOrder creates the order with its line items, backfills the
// invoice number and reconciles stock, all inside one transaction with
// the touched stock rows locked. Per line: enough local stock means a
// plain decrement; a shortfall is covered by the nearest same-city donor
// store and recorded as a pending transfer; no donor fails the order.
func (s *Service) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.repo.Transaction(func(tx Repository) error {
		store, err := tx.StoreByID(input.StoreID)
		if err != nil {
			return err
		}
		if store == nil {
			return ErrStoreNotFound
		}

		admin, err := tx.StoreAdmin(store.ID)
		if err != nil {
			return err
		}
		if admin == nil {
			return ErrNoStoreAdmin
		}

		expedition, err := tx.ExpeditionByName(input.Courier)
		if err != nil {
			return err
		}
		if expedition == nil {
			return ErrNoExpedition
		}

		var addressID *uint
		if input.AddressID != nil && *input.AddressID != 0 {
			address, err := tx.UserAddress(input.UserID, *input.AddressID)
			if err != nil {
				return err
			}
			if address == nil {
				return ErrAddressInvalid
			}
			addressID = &address.ID
		}

		details := make([]models.OrderDetail, 0, len(input.Items))
		var itemsTotal float64
		for _, item := range input.Items {
			subTotal := item.Price * float64(item.Quantity)
			itemsTotal += subTotal
			details = append(details, models.OrderDetail{
				ProductID: item.ProductID,
				StoreID:   store.ID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				SubTotal:  subTotal,
			})
		}

		order = &models.Order{
			OrderUID:     uuid.NewString(),
			UserID:       input.UserID,
			AdminID:      admin.ID,
			StoreID:      store.ID,
			AddressID:    addressID,
			ExpeditionID: expedition.ID,
			Status:       models.OrderStatusPendingPayment,
			CourierPrice: input.CourierPrice,
			TotalPrice:   itemsTotal + input.CourierPrice,
			Note:         input.Note,
			Details:      details,
		}
		if err := tx.CreateOrder(order); err != nil {
			return err
		}

		order.Invoice = fmt.Sprintf("INV-%07d", order.ID)
		if err := tx.SetOrderInvoice(order.ID, order.Invoice); err != nil {
			return err
		}

		for i := range order.Details {
			if err := s.reconcileLine(tx, store, admin.ID, &order.Details[i]); err != nil {
				return err
			}
		}

		return tx.ClearCart(input.UserID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.String("invoice", order.Invoice),
		zap.Uint("store_id", order.StoreID),
		zap.Int("lines", len(order.Details)),
	)

	return order, nil
}

// reconcileLine adjusts inventory for one order detail and writes the
// matching ledger entries.
func (s *Service) reconcileLine(tx Repository, store *models.Store, adminID uint, detail *models.OrderDetail) error {
	stock, err := tx.StockForUpdate(store.ID, detail.ProductID)
	if err != nil {
		return err
	}

	available := 0
	if stock != nil {
		available = stock.Quantity
	}

	fulfillment, err := s.planFulfillment(tx, store, detail.ProductID, detail.Quantity, available)
	if err != nil {
		return err
	}

	switch fulfillment.state {
	case fulfilledLocally:
		stock.Quantity -= detail.Quantity
		if err := tx.SaveStock(stock); err != nil {
			return err
		}
		return tx.CreateAdjustment(&models.StockAdjustment{
			StoreID:       store.ID,
			ProductID:     detail.ProductID,
			AdminID:       adminID,
			QtyChange:     -detail.Quantity,
			Type:          models.AdjustmentTypeCheckout,
			OrderDetailID: &detail.ID,
			Description:   "Checkout",
		})

	case fulfilledWithTransfer:
		// Origin is drained of whatever it still has, the donor covers
		// the shortfall. The physical move stays a pending mutation.
		// An origin holding nothing gets no ledger entry: the ledger
		// records stock changes, not zero deltas.
		if available > 0 {
			stock.Quantity = 0
			if err := tx.SaveStock(stock); err != nil {
				return err
			}
			if err := tx.CreateAdjustment(&models.StockAdjustment{
				StoreID:       store.ID,
				ProductID:     detail.ProductID,
				AdminID:       adminID,
				QtyChange:     -available,
				Type:          models.AdjustmentTypeCheckout,
				OrderDetailID: &detail.ID,
				Description:   "Checkout, local stock drained",
			}); err != nil {
				return err
			}
		}

		donorStock, err := tx.StockForUpdate(fulfillment.donor.ID, detail.ProductID)
		if err != nil {
			return err
		}
		if donorStock == nil || donorStock.Quantity < fulfillment.transfer {
			// The candidate query guaranteed enough stock; losing it here
			// means a concurrent checkout raced us past the lock.
			return &InsufficientStockError{
				ProductID: detail.ProductID,
				Requested: detail.Quantity,
				Available: available,
			}
		}
		donorStock.Quantity -= fulfillment.transfer
		if err := tx.SaveStock(donorStock); err != nil {
			return err
		}

		pending := models.MutationPending
		return tx.CreateAdjustment(&models.StockAdjustment{
			StoreID:         fulfillment.donor.ID,
			ProductID:       detail.ProductID,
			AdminID:         adminID,
			QtyChange:       -fulfillment.transfer,
			Type:            models.AdjustmentTypeCheckout,
			MutationType:    &pending,
			FromStoreID:     &fulfillment.donor.ID,
			DestinedStoreID: &store.ID,
			OrderDetailID:   &detail.ID,
			Description:     "Checkout shortfall covered by transfer",
		})
	}

	return nil
}

// planFulfillment decides how a line will be covered before any stock is
// written.
func (s *Service) planFulfillment(tx Repository, store *models.Store, productID uint, requested, available int) (*lineFulfillment, error) {
	if available >= requested {
		return &lineFulfillment{state: fulfilledLocally}, nil
	}

	shortfall := requested - available
	donor, err := donorStore(tx, store, productID, shortfall)
	if err != nil {
		return nil, err
	}
	if donor == nil {
		s.logger.Warn("no donor store for shortfall",
			zap.Uint("store_id", store.ID),
			zap.Uint("product_id", productID),
			zap.Int("shortfall", shortfall),
		)
		return nil, &InsufficientStockError{
			ProductID: productID,
			Requested: requested,
			Available: available,
		}
	}

	return &lineFulfillment{
		state:    fulfilledWithTransfer,
		donor:    donor,
		transfer: shortfall,
	}, nil
}
