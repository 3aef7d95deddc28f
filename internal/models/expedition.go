package models

import "time"

// Expedition: shipping courier selectable at checkout.
type Expedition struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;not null;unique"` // carrier code, e.g. "jne"
	DisplayName string `gorm:"size:100;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
