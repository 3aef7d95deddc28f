package models

import "time"

type VoucherType string

const (
	VoucherBuyNGetN         VoucherType = "buy_n_get_n"
	VoucherProductDiscount  VoucherType = "product_discount"
	VoucherDeliveryFree     VoucherType = "delivery_free"
	VoucherDeliveryDiscount VoucherType = "delivery_discount"
)

type DiscountType string

const (
	DiscountNominal    DiscountType = "nominal"
	DiscountPercentage DiscountType = "percentage"
)

type Voucher struct {
	ID          uint        `gorm:"primaryKey"`
	Name        string      `gorm:"size:100;not null"`
	Code        string      `gorm:"size:30;uniqueIndex;not null"`
	VoucherType VoucherType `gorm:"size:30;not null"`
	// ProductID scopes the voucher to one product; nil means all products.
	ProductID *uint
	Product   *Product
	StartedAt time.Time `gorm:"index;not null"`
	EndAt     time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ProductDiscount  *VoucherProductDiscountRule  `gorm:"foreignKey:VoucherID"`
	DeliveryDiscount *VoucherDeliveryDiscountRule `gorm:"foreignKey:VoucherID"`
}

type VoucherProductDiscountRule struct {
	ID           uint         `gorm:"primaryKey"`
	VoucherID    uint         `gorm:"index;not null"`
	DiscountType DiscountType `gorm:"size:20;not null"`
	Discount     float64      `gorm:"not null"` // amount (nominal) or percent
	BuyQty       int          // buy_n_get_n: qty to buy
	GetQty       int          // buy_n_get_n: qty granted
}

type VoucherDeliveryDiscountRule struct {
	ID        uint    `gorm:"primaryKey"`
	VoucherID uint    `gorm:"index;not null"`
	Discount  float64 `gorm:"not null"` // percent off delivery
}
