package inventory

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freshcart-backend/internal/models"
)

var (
	ErrMutationNotFound   = errors.New("mutation not found")
	ErrMutationNotPending = errors.New("mutation is not pending")
)

// MutationRepository is the data access surface for transfer completion.
// Lookup methods return (nil, nil) when the record does not exist.
// Transaction hands the callback a repository bound to the transaction.
type MutationRepository interface {
	Transaction(fn func(MutationRepository) error) error

	// AdjustmentForUpdate locks the ledger row for the transaction.
	AdjustmentForUpdate(id uint) (*models.StockAdjustment, error)
	// MarkMutationCompleted flips a pending row to completed and reports
	// whether the row was still pending when the update ran.
	MarkMutationCompleted(id uint) (bool, error)
	StockForUpdate(storeID, productID uint) (*models.StoreProduct, error)
	SaveStock(stock *models.StoreProduct) error
	CreateAdjustment(adj *models.StockAdjustment) error
}

type gormMutationRepository struct {
	db *gorm.DB
}

func NewGormMutationRepository(db *gorm.DB) MutationRepository {
	return &gormMutationRepository{db: db}
}

func (r *gormMutationRepository) Transaction(fn func(MutationRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormMutationRepository{db: tx})
	})
}

func (r *gormMutationRepository) AdjustmentForUpdate(id uint) (*models.StockAdjustment, error) {
	var adjustment models.StockAdjustment
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&adjustment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &adjustment, nil
}

func (r *gormMutationRepository) MarkMutationCompleted(id uint) (bool, error) {
	res := r.db.Model(&models.StockAdjustment{}).
		Where("id = ? AND mutation_type = ?", id, models.MutationPending).
		Update("mutation_type", models.MutationCompleted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *gormMutationRepository) StockForUpdate(storeID, productID uint) (*models.StoreProduct, error) {
	var stock models.StoreProduct
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *gormMutationRepository) SaveStock(stock *models.StoreProduct) error {
	return r.db.Save(stock).Error
}

func (r *gormMutationRepository) CreateAdjustment(adj *models.StockAdjustment) error {
	return r.db.Create(adj).Error
}

// MutationService completes pending cross-store transfers.
type MutationService struct {
	repo   MutationRepository
	logger *zap.Logger
}

func NewMutationService(repo MutationRepository, logger *zap.Logger) *MutationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MutationService{repo: repo, logger: logger}
}

// CompleteMutation confirms the physical transfer: the pending ledger row
// is flipped to completed and the destined store is credited with a
// mutation_in entry, in one transaction with the ledger row locked. The
// flip is conditional on the row still being pending, so two concurrent
// completions of the same mutation cannot credit the destined store twice.
func (s *MutationService) CompleteMutation(mutationID, adminID uint) (*models.StockAdjustment, error) {
	var adjustment *models.StockAdjustment
	err := s.repo.Transaction(func(tx MutationRepository) error {
		var err error
		adjustment, err = tx.AdjustmentForUpdate(mutationID)
		if err != nil {
			return err
		}
		if adjustment == nil {
			return ErrMutationNotFound
		}
		if adjustment.MutationType == nil || *adjustment.MutationType != models.MutationPending {
			return ErrMutationNotPending
		}
		if adjustment.DestinedStoreID == nil {
			return ErrMutationNotPending
		}

		stillPending, err := tx.MarkMutationCompleted(adjustment.ID)
		if err != nil {
			return err
		}
		if !stillPending {
			return ErrMutationNotPending
		}

		destStoreID := *adjustment.DestinedStoreID
		qty := -adjustment.QtyChange // donor entry is negative

		stock, err := tx.StockForUpdate(destStoreID, adjustment.ProductID)
		if err != nil {
			return err
		}
		if stock == nil {
			stock = &models.StoreProduct{StoreID: destStoreID, ProductID: adjustment.ProductID}
		}
		stock.Quantity += qty
		if err := tx.SaveStock(stock); err != nil {
			return err
		}

		completed := models.MutationCompleted
		return tx.CreateAdjustment(&models.StockAdjustment{
			StoreID:         destStoreID,
			ProductID:       adjustment.ProductID,
			AdminID:         adminID,
			QtyChange:       qty,
			Type:            models.AdjustmentTypeMutationIn,
			MutationType:    &completed,
			FromStoreID:     adjustment.FromStoreID,
			DestinedStoreID: adjustment.DestinedStoreID,
			OrderDetailID:   adjustment.OrderDetailID,
			Description:     "Transfer received",
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("mutation completed",
		zap.Uint("mutation_id", adjustment.ID),
		zap.Uint("destined_store_id", *adjustment.DestinedStoreID),
	)
	return adjustment, nil
}
