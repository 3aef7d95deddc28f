package checkout

import (
	"sort"
	"time"

	"freshcart-backend/internal/models"
)

// memoryRepo is an in-memory Repository for tests. Transaction snapshots
// the mutable state and restores it when the callback fails, mirroring
// the rollback behavior of the real database.
type memoryRepo struct {
	stores      []models.Store
	addresses   []models.UserAddress
	admins      []models.User
	expeditions []models.Expedition
	vouchers    []models.Voucher

	stock       map[[2]uint]*models.StoreProduct // (storeID, productID)
	orders      []*models.Order
	adjustments []*models.StockAdjustment
	carts       map[uint][]models.CartItem

	nextOrderID  uint
	nextDetailID uint
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		stock:        make(map[[2]uint]*models.StoreProduct),
		carts:        make(map[uint][]models.CartItem),
		nextOrderID:  1,
		nextDetailID: 1,
	}
}

func (m *memoryRepo) setStock(storeID, productID uint, qty int) {
	m.stock[[2]uint{storeID, productID}] = &models.StoreProduct{
		ID:        uint(len(m.stock) + 1),
		StoreID:   storeID,
		ProductID: productID,
		Quantity:  qty,
	}
}

func (m *memoryRepo) stockQty(storeID, productID uint) int {
	if s, ok := m.stock[[2]uint{storeID, productID}]; ok {
		return s.Quantity
	}
	return 0
}

func (m *memoryRepo) Transaction(fn func(Repository) error) error {
	stockSnap := make(map[[2]uint]*models.StoreProduct, len(m.stock))
	for k, v := range m.stock {
		copied := *v
		stockSnap[k] = &copied
	}
	ordersSnap := append([]*models.Order(nil), m.orders...)
	adjSnap := append([]*models.StockAdjustment(nil), m.adjustments...)
	cartsSnap := make(map[uint][]models.CartItem, len(m.carts))
	for k, v := range m.carts {
		cartsSnap[k] = append([]models.CartItem(nil), v...)
	}
	orderID, detailID := m.nextOrderID, m.nextDetailID

	if err := fn(m); err != nil {
		m.stock = stockSnap
		m.orders = ordersSnap
		m.adjustments = adjSnap
		m.carts = cartsSnap
		m.nextOrderID, m.nextDetailID = orderID, detailID
		return err
	}
	return nil
}

func (m *memoryRepo) Stores() ([]models.Store, error) {
	out := append([]models.Store(nil), m.stores...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepo) CentralStore() (*models.Store, error) {
	for _, s := range m.stores {
		if s.Type == models.StoreTypeCentral {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) StoreByID(id uint) (*models.Store, error) {
	for _, s := range m.stores {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) StoresWithStock(cityID, excludeStoreID, productID uint, minQty int) ([]models.Store, error) {
	var out []models.Store
	for _, s := range m.stores {
		if s.CityID != cityID || s.ID == excludeStoreID {
			continue
		}
		if m.stockQty(s.ID, productID) >= minQty {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryRepo) UserAddress(userID, addressID uint) (*models.UserAddress, error) {
	for _, a := range m.addresses {
		if a.ID == addressID && a.UserID == userID {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) StoreAdmin(storeID uint) (*models.User, error) {
	for _, u := range m.admins {
		if u.Role == models.RoleStoreAdmin && u.StoreID != nil && *u.StoreID == storeID {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) ExpeditionByName(name string) (*models.Expedition, error) {
	for _, e := range m.expeditions {
		if e.Name == name {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) StockForUpdate(storeID, productID uint) (*models.StoreProduct, error) {
	if s, ok := m.stock[[2]uint{storeID, productID}]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (m *memoryRepo) SaveStock(stock *models.StoreProduct) error {
	copied := *stock
	m.stock[[2]uint{stock.StoreID, stock.ProductID}] = &copied
	return nil
}

func (m *memoryRepo) CreateOrder(order *models.Order) error {
	order.ID = m.nextOrderID
	m.nextOrderID++
	for i := range order.Details {
		order.Details[i].ID = m.nextDetailID
		order.Details[i].OrderID = order.ID
		m.nextDetailID++
	}
	m.orders = append(m.orders, order)
	return nil
}

func (m *memoryRepo) SetOrderInvoice(orderID uint, invoice string) error {
	for _, o := range m.orders {
		if o.ID == orderID {
			o.Invoice = invoice
		}
	}
	return nil
}

func (m *memoryRepo) CreateAdjustment(adj *models.StockAdjustment) error {
	adj.ID = uint(len(m.adjustments) + 1)
	m.adjustments = append(m.adjustments, adj)
	return nil
}

func (m *memoryRepo) ClearCart(userID uint) error {
	delete(m.carts, userID)
	return nil
}

func (m *memoryRepo) ActiveVouchers(now time.Time) ([]models.Voucher, error) {
	var out []models.Voucher
	for _, v := range m.vouchers {
		if !v.StartedAt.After(now) && !v.EndAt.Before(now) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memoryRepo) VoucherByID(id uint) (*models.Voucher, error) {
	for _, v := range m.vouchers {
		if v.ID == id {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}
