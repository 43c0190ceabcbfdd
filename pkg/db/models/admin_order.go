package models

import (
	"time"

	"github.com/javohirtm/ombor-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// AdminOrder is an in-store sale assembled by a cashier. At most one
// order per admin may be in the opened state; the database enforces
// that with a partial unique index on (by) WHERE status = 'opened'.
type AdminOrder struct {
	ID                      int64                  `gorm:"column:id;primaryKey;autoIncrement"`
	By                      int64                  `gorm:"column:by;not null"`
	Seller                  *int64                 `gorm:"column:seller"`
	Status                  enums.AdminOrderStatus `gorm:"column:status;not null;default:opened"`
	UserName                *string                `gorm:"column:user_name"`
	UserPhone               *string                `gorm:"column:user_phone"`
	TotalAmount             decimal.Decimal        `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	TotalAmountWithDiscount decimal.Decimal        `gorm:"column:total_amount_with_discount;type:numeric(12,2);not null;default:0"`
	Notes                   *string                `gorm:"column:notes"`
	WarehouseID             int64                  `gorm:"column:warehouse_id;not null"`
	PaymentType             enums.PaymentMethod    `gorm:"column:payment_type;not null;default:cash"`
	Items                   []AdminOrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt               time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time              `gorm:"column:updated_at;autoUpdateTime"`
	CanceledAt              *time.Time             `gorm:"column:canceled_at"`
}

// AdminOrderItem is one variant line on an admin order. Lines merge by
// variant: adding the same barcode twice grows the quantity instead of
// creating a second row.
type AdminOrderItem struct {
	ID                      int64            `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID                 int64            `gorm:"column:order_id;not null"`
	ProductVariantID        int64            `gorm:"column:product_variant_id;not null"`
	Quantity                decimal.Decimal  `gorm:"column:quantity;type:numeric(10,2);not null;default:1"`
	Notes                   *string          `gorm:"column:notes"`
	PricePerUnit            decimal.Decimal  `gorm:"column:price_per_unit;type:numeric(12,2);not null"`
	PriceWithDiscount       *decimal.Decimal `gorm:"column:price_with_discount;type:numeric(12,2)"`
	TotalAmount             decimal.Decimal  `gorm:"column:total_amount;type:numeric(12,2);not null"`
	TotalAmountWithDiscount decimal.Decimal  `gorm:"column:total_amount_with_discount;type:numeric(12,2);not null;default:0"`
	ProductVariant          *ProductVariant  `gorm:"foreignKey:ProductVariantID"`
	CreatedAt               time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// LineTotal is quantity times unit price.
func (i AdminOrderItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.PricePerUnit)
}

// LineTotalWithDiscount uses the discounted price when present.
func (i AdminOrderItem) LineTotalWithDiscount() decimal.Decimal {
	price := i.PricePerUnit
	if i.PriceWithDiscount != nil {
		price = *i.PriceWithDiscount
	}
	return i.Quantity.Mul(price)
}
