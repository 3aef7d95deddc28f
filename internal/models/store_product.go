package models

import "time"

// StoreProduct: per-store stock level for a product.
// Quantity must never go negative; checkout decrements run inside a
// transaction with the row locked.
type StoreProduct struct {
	ID        uint `gorm:"primaryKey"`
	StoreID   uint `gorm:"index:idx_store_product,unique;not null"`
	Store     Store
	ProductID uint `gorm:"index:idx_store_product,unique;not null"`
	Product   Product
	Quantity  int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
