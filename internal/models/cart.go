package models

import "time"

type CartItem struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index:idx_cart_user_product,unique;not null"`
	User      User
	ProductID uint `gorm:"index:idx_cart_user_product,unique;not null"`
	Product   Product
	Quantity  int `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
