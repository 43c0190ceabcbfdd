package models

import (
	"time"

	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
)

// Size is a warehouse-scoped variant attribute (e.g. "XL", "42").
type Size struct {
	ID          int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Size        string             `gorm:"column:size;not null"`
	Description dbtypes.Translated `gorm:"column:description;type:jsonb"`
	WarehouseID int64              `gorm:"column:warehouse_id;not null"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
