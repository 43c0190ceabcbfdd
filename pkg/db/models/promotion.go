package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion is a percentage discount attached to selected variants.
// When several active promotions cover a variant the most recently
// created one wins.
type Promotion struct {
	ID              int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string           `gorm:"column:name;not null"`
	Discount        decimal.Decimal  `gorm:"column:discount;type:numeric(5,2);not null"`
	ProductLimit    int              `gorm:"column:product_limit;not null"`
	IsActive        bool             `gorm:"column:is_active;not null"`
	WarehouseID     int64            `gorm:"column:warehouse_id;not null"`
	ProductVariants []ProductVariant `gorm:"many2many:promotion_product_variants"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
