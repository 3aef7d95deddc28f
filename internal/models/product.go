package models

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:100;not null;unique"`
	Description string  `gorm:"size:500"`
	Unit        string  `gorm:"size:20;not null"` // kg, pcs, pack
	Price       float64 `gorm:"not null"`
	ImageURL    string  `gorm:"size:255"`
	IsActive    bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
