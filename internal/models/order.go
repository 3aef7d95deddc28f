package models

import "time"

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusProcessed      OrderStatus = "processed"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type Order struct {
	ID           uint         `gorm:"primaryKey"`
	OrderUID     string       `gorm:"size:36;uniqueIndex;not null"` // public reference
	UserID       uint         `gorm:"index;not null"`
	User         User
	AdminID      uint         `gorm:"not null"` // store admin managing the order
	Admin        User         `gorm:"foreignKey:AdminID"`
	StoreID      uint         `gorm:"index;not null"`
	Store        Store
	AddressID    *uint
	Address      *UserAddress `gorm:"foreignKey:AddressID"`
	ExpeditionID uint         `gorm:"not null"`
	Expedition   Expedition
	Status       OrderStatus  `gorm:"size:30;not null;default:pending_payment"`
	// Invoice is backfilled from the generated id: INV-<7-digit-zero-padded-id>.
	Invoice      string  `gorm:"size:20;index"`
	CourierPrice float64 `gorm:"not null"` // charged once per order
	TotalPrice   float64 `gorm:"not null"`
	Note         string  `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Details []OrderDetail `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderDetail struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"index;not null"`
	ProductID uint    `gorm:"index;not null"`
	Product   Product
	StoreID   uint    `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
	Price     float64 `gorm:"not null"` // unit price at checkout time
	SubTotal  float64 `gorm:"not null"` // Price * Quantity
	CreatedAt time.Time
	UpdatedAt time.Time
}
