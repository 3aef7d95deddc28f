package models

import "time"

type AdjustmentType string

const (
	AdjustmentTypeCheckout   AdjustmentType = "checkout"
	AdjustmentTypeManual     AdjustmentType = "manual"
	AdjustmentTypeImport     AdjustmentType = "import"
	AdjustmentTypeMutationIn AdjustmentType = "mutation_in"
)

type MutationType string

const (
	MutationPending   MutationType = "pending"
	MutationCompleted MutationType = "completed"
)

// StockAdjustment: ledger entry for every stock change. Cross-store
// transfers are recorded as a pending mutation on the donor side and
// completed out-of-band once the goods physically move.
type StockAdjustment struct {
	ID        uint           `gorm:"primaryKey"`
	StoreID   uint           `gorm:"index;not null"` // store whose stock changed
	Store     Store
	ProductID uint           `gorm:"index;not null"`
	Product   Product
	AdminID   uint           `gorm:"not null"`
	Admin     User           `gorm:"foreignKey:AdminID"`
	QtyChange int            `gorm:"not null"` // signed delta
	Type      AdjustmentType `gorm:"size:20;not null;index"`

	// Transfer bookkeeping, set only when the entry is part of a mutation.
	MutationType    *MutationType `gorm:"size:20;index"`
	FromStoreID     *uint         // donor store
	DestinedStoreID *uint         // store the goods are headed to
	OrderDetailID   *uint         `gorm:"index"` // triggering checkout line

	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
