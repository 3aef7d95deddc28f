package inventory

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"freshcart-backend/internal/database"
	"freshcart-backend/internal/models"
)

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Unit        *string  `json:"unit"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
}

type ProductResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	IsActive    bool    `json:"is_active"`
}

func productToResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		IsActive:    p.IsActive,
	}
}

// POST /api/admin/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Unit == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and unit are required")
		}
		if body.Price <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Price must be greater than zero")
		}

		product := models.Product{
			Name:        body.Name,
			Description: body.Description,
			Unit:        body.Unit,
			Price:       body.Price,
			ImageURL:    body.ImageURL,
			IsActive:    true,
		}

		if err := database.DB.Create(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Product could not be created")
		}

		return c.Status(fiber.StatusCreated).JSON(productToResponse(product))
	}
}

// GET /api/products?search=&page=&per_page=
// Storefront listing: active products only, optional name search.
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, _ := strconv.Atoi(c.Query("page", "1"))
		perPage, _ := strconv.Atoi(c.Query("per_page", "20"))
		if page < 1 {
			page = 1
		}
		if perPage < 1 || perPage > 100 {
			perPage = 20
		}

		q := database.DB.Model(&models.Product{}).Where("is_active = ?", true)
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			q = q.Where("name ILIKE ?", "%"+search+"%")
		}

		var total int64
		q.Count(&total)

		var products []models.Product
		if err := q.Order("name").
			Offset((page - 1) * perPage).
			Limit(perPage).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Products could not be listed")
		}

		res := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			res = append(res, productToResponse(p))
		}

		return c.JSON(fiber.Map{
			"products": res,
			"total":    total,
			"page":     page,
			"per_page": perPage,
		})
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		return c.JSON(productToResponse(product))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Product name cannot be empty")
			}
			product.Name = name
		}
		if body.Description != nil {
			product.Description = *body.Description
		}
		if body.Unit != nil {
			product.Unit = *body.Unit
		}
		if body.Price != nil {
			if *body.Price <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Price must be greater than zero")
			}
			product.Price = *body.Price
		}
		if body.ImageURL != nil {
			product.ImageURL = *body.ImageURL
		}
		if body.IsActive != nil {
			product.IsActive = *body.IsActive
		}

		if err := database.DB.Save(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Product could not be updated")
		}

		return c.JSON(productToResponse(product))
	}
}

// DELETE /api/admin/products/:id
// Soft path: products referenced by orders stay in the catalog as inactive.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var product models.Product
		if err := database.DB.First(&product, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var refCount int64
		database.DB.Model(&models.OrderDetail{}).Where("product_id = ?", product.ID).Count(&refCount)
		if refCount > 0 {
			product.IsActive = false
			if err := database.DB.Save(&product).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Product could not be deactivated")
			}
			return c.JSON(fiber.Map{"message": "Product has orders, deactivated instead of deleted"})
		}

		if err := database.DB.Delete(&product).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Product could not be deleted")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
