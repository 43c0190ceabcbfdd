package catalog

import (
	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
	"github.com/shopspring/decimal"
)

// CategoryInput carries create/update fields for a category.
type CategoryInput struct {
	Name        dbtypes.Translated
	Description dbtypes.Translated
	Image       *string
	WarehouseID *int64
}

// SubcategoryInput carries create/update fields for a subcategory.
type SubcategoryInput struct {
	Name        dbtypes.Translated
	Description dbtypes.Translated
	CategoryID  int64
}

// ColorInput carries create/update fields for a color.
type ColorInput struct {
	Name    dbtypes.Translated
	HexCode string
}

// SizeInput carries create/update fields for a size.
type SizeInput struct {
	Size        string
	Description dbtypes.Translated
	WarehouseID int64
}

// MeasureInput carries create/update fields for a measure.
type MeasureInput struct {
	Name string
}

// ProductInput creates a product together with its information row.
type ProductInput struct {
	Name        dbtypes.Translated
	Description dbtypes.Translated
	Information ProductInformationInput
	WarehouseID int64
	Subcategory int64
}

// ProductUpdateInput patches a product; nil fields stay untouched.
type ProductUpdateInput struct {
	Name        dbtypes.Translated
	Description dbtypes.Translated
	Subcategory *int64
}

// ProductInformationInput describes the shared product line facts.
type ProductInformationInput struct {
	ProductType string
	Brand       *string
	ModelName   *string
	Description dbtypes.Translated
	Attributes  dbtypes.Attributes
}

// VariantInput creates a purchasable unit under a product.
type VariantInput struct {
	Barcode      int64
	ProductID    int64
	ComeInPrice  decimal.Decimal
	CurrentPrice decimal.Decimal
	IsMain       bool
	Amount       decimal.Decimal
	Weight       *float64
	ColorID      *int64
	SizeID       *int64
	MeasureID    int64
	Images       []VariantImageInput
}

// VariantUpdateInput patches a variant. Stock amount is deliberately
// absent; the stock guard owns amount mutations.
type VariantUpdateInput struct {
	ComeInPrice  *decimal.Decimal
	CurrentPrice *decimal.Decimal
	IsMain       *bool
	Weight       *float64
	ColorID      *int64
	SizeID       *int64
	MeasureID    *int64
}

// VariantImageInput attaches one gallery entry to a variant.
type VariantImageInput struct {
	Image   string
	AltText dbtypes.Translated
	IsMain  bool
}
