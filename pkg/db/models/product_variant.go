package models

import (
	"time"

	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
	"github.com/shopspring/decimal"
)

// ProductVariant is the barcode-level purchasable unit. Stock lives on
// Amount; all stock mutations go through the stock guard.
type ProductVariant struct {
	ID           int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Barcode      int64            `gorm:"column:barcode;not null;uniqueIndex"`
	ProductID    int64            `gorm:"column:product_id;not null"`
	ComeInPrice  decimal.Decimal  `gorm:"column:come_in_price;type:numeric(12,2);not null"`
	CurrentPrice decimal.Decimal  `gorm:"column:current_price;type:numeric(12,2);not null"`
	OldPrice     *decimal.Decimal `gorm:"column:old_price;type:numeric(12,2)"`
	Discount     *decimal.Decimal `gorm:"column:discount;type:numeric(5,2)"`
	IsMain       bool             `gorm:"column:is_main;not null;default:false"`
	Amount       decimal.Decimal  `gorm:"column:amount;type:numeric(12,2);not null"`
	Weight       *float64         `gorm:"column:weight"`
	ColorID      *int64           `gorm:"column:color_id"`
	SizeID       *int64           `gorm:"column:size_id"`
	MeasureID    int64            `gorm:"column:measure_id;not null"`
	Images       []ProductImage   `gorm:"foreignKey:ProductVariantID;constraint:OnDelete:CASCADE"`
	Promotions   []Promotion      `gorm:"many2many:promotion_product_variants"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductImage is a gallery entry for one variant.
type ProductImage struct {
	ID               int64              `gorm:"column:id;primaryKey;autoIncrement"`
	ProductVariantID int64              `gorm:"column:product_variant_id;not null"`
	AltText          dbtypes.Translated `gorm:"column:alt_text;type:jsonb"`
	Image            string             `gorm:"column:image;not null"`
	IsMain           bool               `gorm:"column:is_main;not null;default:false"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
