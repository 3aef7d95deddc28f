package models

import "time"

type StoreType string

const (
	StoreTypeCentral StoreType = "central"
	StoreTypeBranch  StoreType = "branch"
)

// Store: a fulfillment location. Exactly one central store may exist;
// branches require the central store to be created first.
type Store struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:100;not null;unique"`
	Type      StoreType `gorm:"size:20;not null;default:branch"`
	CityID    uint      `gorm:"index;not null"`
	City      City
	Address   string    `gorm:"size:255"`
	Latitude  float64   `gorm:"not null"`
	Longitude float64   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Admins []User `gorm:"foreignKey:StoreID"`
	Stocks []StoreProduct
}
