package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freshcart-backend/internal/auth"
	"freshcart-backend/internal/database"
	"freshcart-backend/internal/logging"
	"freshcart-backend/internal/models"
)

// POST /api/manage/stock/import
// Multipart upload of an .xlsx sheet with columns: product name, quantity.
// Each matched row sets the absolute stock level for the acting store and
// writes an "import" adjustment for the delta.
func ImportStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var bodyStoreID *uint
		if v := c.QueryInt("store_id"); v > 0 {
			id := uint(v)
			bodyStoreID = &id
		}
		storeID, err := resolveStoreID(c, bodyStoreID)
		if err != nil {
			return err
		}
		adminID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "File upload failed: "+err.Error())
		}
		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Only .xlsx files are accepted")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File could not be opened")
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file could not be read: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file has no sheets")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet could not be read: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel file is empty")
		}

		// Skip a header row when the first cell looks like a column title.
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "PRODUCT") || strings.Contains(firstCell, "NAME") {
				startIndex = 1
			}
		}

		matched := 0
		unmatched := make([]string, 0)

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			for i := startIndex; i < len(rows); i++ {
				row := rows[i]
				if len(row) < 2 {
					continue
				}

				productName := strings.TrimSpace(row[0])
				if productName == "" {
					continue
				}

				qty, convErr := strconv.Atoi(strings.TrimSpace(row[1]))
				if convErr != nil || qty < 0 {
					unmatched = append(unmatched, fmt.Sprintf("%s (row %d: bad quantity)", productName, i+1))
					continue
				}

				var product models.Product
				if err := tx.Where("LOWER(name) = LOWER(?)", productName).First(&product).Error; err != nil {
					if !errors.Is(err, gorm.ErrRecordNotFound) {
						return err
					}
					unmatched = append(unmatched, productName)
					continue
				}

				var stock models.StoreProduct
				res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("store_id = ? AND product_id = ?", storeID, product.ID).
					First(&stock)
				if res.Error != nil {
					if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
						return res.Error
					}
					stock = models.StoreProduct{StoreID: storeID, ProductID: product.ID}
				}

				delta := qty - stock.Quantity
				stock.Quantity = qty
				if err := tx.Save(&stock).Error; err != nil {
					return err
				}

				if delta != 0 {
					adjustment := models.StockAdjustment{
						StoreID:     storeID,
						ProductID:   product.ID,
						AdminID:     adminID,
						QtyChange:   delta,
						Type:        models.AdjustmentTypeImport,
						Description: fmt.Sprintf("Imported from %s", fileHeader.Filename),
					}
					if err := tx.Create(&adjustment).Error; err != nil {
						return err
					}
				}
				matched++
			}
			return nil
		})
		if err != nil {
			logging.L.Error("stock import failed", zap.Uint("store_id", storeID), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Stock import failed")
		}

		logging.L.Info("stock import finished",
			zap.Uint("store_id", storeID),
			zap.Int("matched", matched),
			zap.Int("unmatched", len(unmatched)),
		)

		return c.JSON(fiber.Map{
			"matched":   matched,
			"unmatched": unmatched,
		})
	}
}
