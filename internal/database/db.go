package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"freshcart-backend/internal/config"
	"freshcart-backend/internal/models"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.Province{},
		&models.City{},
		&models.Store{},
		&models.User{},
		&models.UserAddress{},
		&models.Product{},
		&models.StoreProduct{},
		&models.CartItem{},
		&models.Expedition{},
		&models.Order{},
		&models.OrderDetail{},
		&models.StockAdjustment{},
		&models.Voucher{},
		&models.VoucherProductDiscountRule{},
		&models.VoucherDeliveryDiscountRule{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("database connected, migration complete")
}
