package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"freshcart-backend/internal/config"
	"freshcart-backend/internal/database"
	"freshcart-backend/internal/models"
)

// Seeds reference data and a small demo dataset: two provinces, four
// cities, a central store plus two branches, products with stock,
// expeditions, vouchers and demo accounts.
func main() {
	cfg := config.Load()
	database.Init(cfg)

	var count int64
	database.DB.Model(&models.Store{}).Count(&count)
	if count > 0 {
		log.Println("database already seeded, nothing to do")
		return
	}

	jakarta := models.Province{Name: "DKI Jakarta"}
	westJava := models.Province{Name: "West Java"}
	mustCreate(&jakarta)
	mustCreate(&westJava)

	southJakarta := models.City{ProvinceID: jakarta.ID, Name: "South Jakarta"}
	eastJakarta := models.City{ProvinceID: jakarta.ID, Name: "East Jakarta"}
	bandung := models.City{ProvinceID: westJava.ID, Name: "Bandung"}
	bekasi := models.City{ProvinceID: westJava.ID, Name: "Bekasi"}
	mustCreate(&southJakarta)
	mustCreate(&eastJakarta)
	mustCreate(&bandung)
	mustCreate(&bekasi)

	central := models.Store{
		Name:      "FreshCart Central Warehouse",
		Type:      models.StoreTypeCentral,
		CityID:    southJakarta.ID,
		Address:   "Jl. Gatot Subroto 12",
		Latitude:  -6.2351,
		Longitude: 106.8213,
	}
	branchTebet := models.Store{
		Name:      "FreshCart Tebet",
		Type:      models.StoreTypeBranch,
		CityID:    southJakarta.ID,
		Address:   "Jl. Tebet Raya 45",
		Latitude:  -6.2266,
		Longitude: 106.8559,
	}
	branchBandung := models.Store{
		Name:      "FreshCart Bandung",
		Type:      models.StoreTypeBranch,
		CityID:    bandung.ID,
		Address:   "Jl. Braga 8",
		Latitude:  -6.9147,
		Longitude: 107.6098,
	}
	mustCreate(&central)
	mustCreate(&branchTebet)
	mustCreate(&branchBandung)

	products := []models.Product{
		{Name: "Jasmine Rice 5kg", Unit: "pack", Price: 78000, IsActive: true},
		{Name: "Free Range Eggs 10pcs", Unit: "pack", Price: 32000, IsActive: true},
		{Name: "Fresh Spinach", Unit: "bunch", Price: 6500, IsActive: true},
		{Name: "Chicken Breast 1kg", Unit: "kg", Price: 45000, IsActive: true},
		{Name: "Mineral Water 1.5L", Unit: "pcs", Price: 7000, IsActive: true},
	}
	for i := range products {
		mustCreate(&products[i])
	}

	for _, store := range []models.Store{central, branchTebet, branchBandung} {
		for _, p := range products {
			mustCreate(&models.StoreProduct{
				StoreID:   store.ID,
				ProductID: p.ID,
				Quantity:  100,
			})
		}
	}

	expeditions := []models.Expedition{
		{Name: "jne", DisplayName: "JNE Regular"},
		{Name: "sicepat", DisplayName: "SiCepat"},
		{Name: "instant", DisplayName: "Instant Courier"},
	}
	for i := range expeditions {
		mustCreate(&expeditions[i])
	}

	now := time.Now()
	freeDelivery := models.Voucher{
		Name:        "Free delivery week",
		Code:        "FREEDEL",
		VoucherType: models.VoucherDeliveryFree,
		StartedAt:   now.AddDate(0, 0, -1),
		EndAt:       now.AddDate(0, 0, 6),
	}
	mustCreate(&freeDelivery)
	riceDiscount := models.Voucher{
		Name:        "Rice discount",
		Code:        "RICE10",
		VoucherType: models.VoucherProductDiscount,
		ProductID:   &products[0].ID,
		StartedAt:   now.AddDate(0, 0, -1),
		EndAt:       now.AddDate(0, 1, 0),
	}
	mustCreate(&riceDiscount)
	mustCreate(&models.VoucherProductDiscountRule{
		VoucherID:    riceDiscount.ID,
		DiscountType: models.DiscountPercentage,
		Discount:     10,
	})

	superAdmin := seedUser("Super Admin", "admin@freshcart.dev", "changeme-super", models.RoleSuperAdmin, nil)
	seedUser("Tebet Admin", "tebet@freshcart.dev", "changeme-tebet", models.RoleStoreAdmin, &branchTebet.ID)
	seedUser("Central Admin", "central@freshcart.dev", "changeme-central", models.RoleStoreAdmin, &central.ID)
	seedUser("Bandung Admin", "bandung@freshcart.dev", "changeme-bandung", models.RoleStoreAdmin, &branchBandung.ID)
	seedUser("Demo Customer", "customer@freshcart.dev", "changeme-customer", models.RoleCustomer, nil)

	log.Printf("seed complete, super admin id=%d", superAdmin.ID)
}

func seedUser(name, email, password string, role models.UserRole, storeID *uint) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("could not hash password: %v", err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		StoreID:      storeID,
	}
	mustCreate(&user)
	return &user
}

func mustCreate(value interface{}) {
	if err := database.DB.Create(value).Error; err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
