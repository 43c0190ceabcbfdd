package catalog

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the product catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	FindCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context, params pagination.Params) ([]models.Category, int64, error)
	UpdateCategory(ctx context.Context, id int64, updates map[string]any) error
	DeleteCategory(ctx context.Context, id int64) error

	CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) (*models.Subcategory, error)
	FindSubcategory(ctx context.Context, id int64) (*models.Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID int64, params pagination.Params) ([]models.Subcategory, int64, error)
	UpdateSubcategory(ctx context.Context, id int64, updates map[string]any) error
	DeleteSubcategory(ctx context.Context, id int64) error

	CreateColor(ctx context.Context, color *models.Color) (*models.Color, error)
	ListColors(ctx context.Context, params pagination.Params) ([]models.Color, int64, error)
	UpdateColor(ctx context.Context, id int64, updates map[string]any) error
	DeleteColor(ctx context.Context, id int64) error

	CreateSize(ctx context.Context, size *models.Size) (*models.Size, error)
	ListSizes(ctx context.Context, warehouseID int64, params pagination.Params) ([]models.Size, int64, error)
	UpdateSize(ctx context.Context, id int64, updates map[string]any) error
	DeleteSize(ctx context.Context, id int64) error

	CreateMeasure(ctx context.Context, measure *models.Measure) (*models.Measure, error)
	ListMeasures(ctx context.Context, params pagination.Params) ([]models.Measure, int64, error)
	UpdateMeasure(ctx context.Context, id int64, updates map[string]any) error
	DeleteMeasure(ctx context.Context, id int64) error

	CreateProductInformation(ctx context.Context, info *models.ProductInformation) (*models.ProductInformation, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	FindProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, warehouseID int64, params pagination.Params) ([]models.Product, int64, error)
	UpdateProduct(ctx context.Context, id int64, updates map[string]any) error
	DeleteProduct(ctx context.Context, id int64) error

	CreateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error)
	FindVariant(ctx context.Context, id int64) (*models.ProductVariant, error)
	FindVariantByBarcode(ctx context.Context, warehouseID, barcode int64) (*models.ProductVariant, error)
	ListVariants(ctx context.Context, productID int64, params pagination.Params) ([]models.ProductVariant, int64, error)
	UpdateVariant(ctx context.Context, id int64, updates map[string]any) error
	DeleteVariant(ctx context.Context, id int64) error
}

// Service exposes the catalog operations used by the HTTP layer.
type Service interface {
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context, params pagination.Params) (*pagination.Page, error)
	UpdateCategory(ctx context.Context, id int64, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateSubcategory(ctx context.Context, input SubcategoryInput) (*models.Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID int64, params pagination.Params) (*pagination.Page, error)
	UpdateSubcategory(ctx context.Context, id int64, input SubcategoryInput) (*models.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id int64) error

	CreateColor(ctx context.Context, input ColorInput) (*models.Color, error)
	ListColors(ctx context.Context, params pagination.Params) (*pagination.Page, error)
	UpdateColor(ctx context.Context, id int64, input ColorInput) error
	DeleteColor(ctx context.Context, id int64) error

	CreateSize(ctx context.Context, input SizeInput) (*models.Size, error)
	ListSizes(ctx context.Context, warehouseID int64, params pagination.Params) (*pagination.Page, error)
	UpdateSize(ctx context.Context, id int64, input SizeInput) error
	DeleteSize(ctx context.Context, id int64) error

	CreateMeasure(ctx context.Context, input MeasureInput) (*models.Measure, error)
	ListMeasures(ctx context.Context, params pagination.Params) (*pagination.Page, error)
	UpdateMeasure(ctx context.Context, id int64, input MeasureInput) error
	DeleteMeasure(ctx context.Context, id int64) error

	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, warehouseID int64, params pagination.Params) (*pagination.Page, error)
	UpdateProduct(ctx context.Context, id int64, input ProductUpdateInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	CreateVariant(ctx context.Context, warehouseID int64, input VariantInput) (*models.ProductVariant, error)
	GetVariant(ctx context.Context, id int64) (*models.ProductVariant, error)
	GetVariantByBarcode(ctx context.Context, warehouseID, barcode int64) (*models.ProductVariant, error)
	ListVariants(ctx context.Context, productID int64, params pagination.Params) (*pagination.Page, error)
	UpdateVariant(ctx context.Context, id int64, input VariantUpdateInput) (*models.ProductVariant, error)
	DeleteVariant(ctx context.Context, id int64) error
}
