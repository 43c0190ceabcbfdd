package promotions

import "github.com/shopspring/decimal"

// CreateInput carries the fields for a new promotion.
type CreateInput struct {
	WarehouseID  int64
	Name         string
	Discount     decimal.Decimal
	ProductLimit int
	IsActive     *bool
	VariantIDs   []int64
}

// UpdateInput carries optional promotion changes.
type UpdateInput struct {
	Name         *string
	Discount     *decimal.Decimal
	ProductLimit *int
	IsActive     *bool
}
