package checkout

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freshcart-backend/internal/models"
)

// Repository is the data access surface the checkout service runs on.
// Lookup methods return (nil, nil) when the record does not exist so
// callers can turn absence into domain errors. Transaction hands the
// callback a Repository bound to the transaction; every write made
// through it commits or rolls back as one unit.
type Repository interface {
	Transaction(fn func(Repository) error) error

	Stores() ([]models.Store, error)
	CentralStore() (*models.Store, error)
	StoreByID(id uint) (*models.Store, error)
	// StoresWithStock returns stores in the given city, excluding one,
	// holding at least minQty of the product.
	StoresWithStock(cityID, excludeStoreID, productID uint, minQty int) ([]models.Store, error)

	UserAddress(userID, addressID uint) (*models.UserAddress, error)
	StoreAdmin(storeID uint) (*models.User, error)
	ExpeditionByName(name string) (*models.Expedition, error)

	// StockForUpdate locks the stock row for the rest of the transaction.
	StockForUpdate(storeID, productID uint) (*models.StoreProduct, error)
	SaveStock(stock *models.StoreProduct) error
	CreateOrder(order *models.Order) error
	SetOrderInvoice(orderID uint, invoice string) error
	CreateAdjustment(adj *models.StockAdjustment) error
	ClearCart(userID uint) error

	ActiveVouchers(now time.Time) ([]models.Voucher, error)
	VoucherByID(id uint) (*models.Voucher, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Transaction(fn func(Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) Stores() ([]models.Store, error) {
	var stores []models.Store
	err := r.db.Preload("City.Province").Order("id").Find(&stores).Error
	return stores, err
}

func (r *gormRepository) CentralStore() (*models.Store, error) {
	var store models.Store
	err := r.db.Preload("City.Province").
		Where("type = ?", models.StoreTypeCentral).
		First(&store).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *gormRepository) StoreByID(id uint) (*models.Store, error) {
	var store models.Store
	err := r.db.Preload("City.Province").First(&store, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *gormRepository) StoresWithStock(cityID, excludeStoreID, productID uint, minQty int) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.
		Joins("JOIN store_products ON store_products.store_id = stores.id").
		Where("stores.city_id = ? AND stores.id <> ?", cityID, excludeStoreID).
		Where("store_products.product_id = ? AND store_products.quantity >= ?", productID, minQty).
		Order("stores.id").
		Find(&stores).Error
	return stores, err
}

func (r *gormRepository) UserAddress(userID, addressID uint) (*models.UserAddress, error) {
	var address models.UserAddress
	err := r.db.Preload("City.Province").
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *gormRepository) StoreAdmin(storeID uint) (*models.User, error) {
	var admin models.User
	err := r.db.
		Where("store_id = ? AND role = ?", storeID, models.RoleStoreAdmin).
		Order("id").
		First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *gormRepository) ExpeditionByName(name string) (*models.Expedition, error) {
	var expedition models.Expedition
	err := r.db.Where("name = ?", name).First(&expedition).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &expedition, nil
}

func (r *gormRepository) StockForUpdate(storeID, productID uint) (*models.StoreProduct, error) {
	var stock models.StoreProduct
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *gormRepository) SaveStock(stock *models.StoreProduct) error {
	return r.db.Save(stock).Error
}

func (r *gormRepository) CreateOrder(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *gormRepository) SetOrderInvoice(orderID uint, invoice string) error {
	return r.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("invoice", invoice).Error
}

func (r *gormRepository) CreateAdjustment(adj *models.StockAdjustment) error {
	return r.db.Create(adj).Error
}

func (r *gormRepository) ClearCart(userID uint) error {
	return r.db.Delete(&models.CartItem{}, "user_id = ?", userID).Error
}

func (r *gormRepository) ActiveVouchers(now time.Time) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	err := r.db.
		Preload("ProductDiscount").
		Preload("DeliveryDiscount").
		Where("started_at <= ? AND end_at >= ?", now, now).
		Order("id").
		Find(&vouchers).Error
	return vouchers, err
}

func (r *gormRepository) VoucherByID(id uint) (*models.Voucher, error) {
	var voucher models.Voucher
	err := r.db.
		Preload("ProductDiscount").
		Preload("DeliveryDiscount").
		First(&voucher, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}
