package models

import (
	"time"

	"github.com/javohirtm/ombor-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Revision is a stock audit session for one warehouse. Only one
// revision per warehouse may be in the created state; a partial unique
// index on (warehouse_id) WHERE status = 'created' enforces that.
type Revision struct {
	ID          int64                `gorm:"column:id;primaryKey;autoIncrement"`
	WarehouseID int64                `gorm:"column:warehouse_id;not null"`
	Status      enums.RevisionStatus `gorm:"column:status;not null;default:created"`
	CreatedBy   int64                `gorm:"column:created_by;not null"`
	CompletedBy *int64               `gorm:"column:completed_by"`
	CancelledBy *int64               `gorm:"column:cancelled_by"`
	Notes       *string              `gorm:"column:notes"`
	Items       []RevisionItem       `gorm:"foreignKey:RevisionID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	CompletedAt *time.Time           `gorm:"column:completed_at"`
	CancelledAt *time.Time           `gorm:"column:cancelled_at"`
}

// RevisionItem records one scanned variant. SystemQuantity is the book
// stock snapshotted at the first scan; Difference = actual - system.
type RevisionItem struct {
	ID               int64           `gorm:"column:id;primaryKey;autoIncrement"`
	RevisionID       int64           `gorm:"column:revision_id;not null;uniqueIndex:uq_revision_variant"`
	ProductVariantID int64           `gorm:"column:product_variant_id;not null;uniqueIndex:uq_revision_variant"`
	SystemQuantity   decimal.Decimal `gorm:"column:system_quantity;type:numeric(10,2);not null"`
	ActualQuantity   decimal.Decimal `gorm:"column:actual_quantity;type:numeric(10,2);not null"`
	Difference       decimal.Decimal `gorm:"column:difference;type:numeric(10,2);not null"`
	Notes            *string         `gorm:"column:notes"`
	ScannedAt        time.Time       `gorm:"column:scanned_at;autoCreateTime"`
}
