package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Banner is a storefront campaign that can push its discount onto the
// variants it references.
type Banner struct {
	ID                 int64            `gorm:"column:id;primaryKey;autoIncrement"`
	Title              string           `gorm:"column:title;not null"`
	Description        *string          `gorm:"column:description"`
	ImageURL           string           `gorm:"column:image_url;not null"`
	DiscountPercentage decimal.Decimal  `gorm:"column:discount_percentage;type:numeric(5,2);not null"`
	IsActive           bool             `gorm:"column:is_active;not null"`
	StartDate          time.Time        `gorm:"column:start_date;not null"`
	EndDate            time.Time        `gorm:"column:end_date;not null"`
	ProductVariants    []ProductVariant `gorm:"many2many:banner_product_variants"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
