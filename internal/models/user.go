package models

import "time"

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleStoreAdmin UserRole = "store_admin"
	RoleCustomer   UserRole = "customer"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	StoreID      *uint
	Store        *Store
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	Phone        string   `gorm:"size:50"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Addresses []UserAddress
}
