package models

import "time"

// UserAddress: saved delivery address with geocoded coordinates.
// Coordinates are persisted at creation time by the client-side geocoder.
type UserAddress struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	User      User
	Label     string `gorm:"size:100"`
	Address   string `gorm:"size:255;not null"`
	CityID    uint   `gorm:"index;not null"`
	City      City
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	IsPrimary bool    `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
