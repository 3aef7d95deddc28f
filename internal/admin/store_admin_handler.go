package admin

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"freshcart-backend/internal/database"
	"freshcart-backend/internal/models"
)

type CreateStoreAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StoreAdminResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	StoreID   *uint  `json:"store_id"`
	CreatedAt string `json:"created_at"`
}

type SwapStoreAdminsRequest struct {
	AdminAID uint `json:"admin_a_id"`
	AdminBID uint `json:"admin_b_id"`
}

// POST /api/admin/stores/:id/admin
func CreateStoreAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("id")

		var store models.Store
		if err := database.DB.First(&store, "id = ?", storeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Store not found")
		}

		var body CreateStoreAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.ToLower(strings.TrimSpace(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if body.Name == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, email and password are required")
		}

		var exist models.User
		if err := database.DB.Where("email = ?", body.Email).First(&exist).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Email is already registered")
		}

		hash, _ := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: string(hash),
			Role:         models.RoleStoreAdmin,
			StoreID:      &store.ID,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Store admin could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"store_id": user.StoreID,
		})
	}
}

// GET /api/admin/stores/:id/admins
func ListStoreAdminsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("id")

		var users []models.User
		if err := database.DB.
			Where("store_id = ? AND role = ?", storeID, models.RoleStoreAdmin).
			Order("created_at DESC").
			Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Admins could not be listed")
		}

		res := make([]StoreAdminResponse, 0, len(users))
		for _, u := range users {
			res = append(res, StoreAdminResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				Role:      string(u.Role),
				StoreID:   u.StoreID,
				CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

// POST /api/admin/store-admins/swap
// Swaps the store assignments of two admins in one transaction so the
// stores are never left without their admin mid-swap.
func SwapStoreAdminsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SwapStoreAdminsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.AdminAID == 0 || body.AdminBID == 0 || body.AdminAID == body.AdminBID {
			return fiber.NewError(fiber.StatusBadRequest, "Two distinct admin ids are required")
		}

		var adminA, adminB models.User
		if err := database.DB.First(&adminA, body.AdminAID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Admin not found")
		}
		if err := database.DB.First(&adminB, body.AdminBID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Admin not found")
		}
		if adminA.Role != models.RoleStoreAdmin || adminB.Role != models.RoleStoreAdmin {
			return fiber.NewError(fiber.StatusBadRequest, "Both users must be store admins")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.User{}).Where("id = ?", adminA.ID).
				Update("store_id", adminB.StoreID).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).Where("id = ?", adminB.ID).
				Update("store_id", adminA.StoreID).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Admins could not be swapped")
		}

		return c.JSON(fiber.Map{
			"message": "Store admins swapped",
		})
	}
}
