package models

import (
	"time"

	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
)

// Category is a top-level catalog grouping with multilingual naming.
type Category struct {
	ID            int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name          dbtypes.Translated `gorm:"column:name;type:jsonb;not null"`
	Image         *string            `gorm:"column:image"`
	Description   dbtypes.Translated `gorm:"column:description;type:jsonb"`
	WarehouseID   *int64             `gorm:"column:warehouse_id"`
	Subcategories []Subcategory      `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// Subcategory is a second-level catalog grouping under a category.
type Subcategory struct {
	ID          int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name        dbtypes.Translated `gorm:"column:name;type:jsonb;not null"`
	Description dbtypes.Translated `gorm:"column:description;type:jsonb"`
	CategoryID  int64              `gorm:"column:category_id;not null"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
