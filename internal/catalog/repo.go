package catalog

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *repository) FindCategory(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Subcategories").
		Where("id = ?", id).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) ListCategories(ctx context.Context, params pagination.Params) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Category{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id int64, updates map[string]any) error {
	return updateByID(ctx, r.db, &models.Category{}, id, updates)
}

func (r *repository) DeleteCategory(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &models.Category{}, id)
}

func (r *repository) CreateSubcategory(ctx context.Context, subcategory *models.Subcategory) (*models.Subcategory, error) {
	if err := r.db.WithContext(ctx).Create(subcategory).Error; err != nil {
		return nil, err
	}
	return subcategory, nil
}

func (r *repository) FindSubcategory(ctx context.Context, id int64) (*models.Subcategory, error) {
	var subcategory models.Subcategory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&subcategory).Error
	if err != nil {
		return nil, err
	}
	return &subcategory, nil
}

func (r *repository) ListSubcategories(ctx context.Context, categoryID int64, params pagination.Params) ([]models.Subcategory, int64, error) {
	var subcategories []models.Subcategory
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Subcategory{})
	if categoryID != 0 {
		base = base.Where("category_id = ?", categoryID)
	}
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&subcategories).Error
	if err != nil {
		return nil, 0, err
	}
	return subcategories, total, nil
}

func (r *repository) UpdateSubcategory(ctx context.Context, id int64, updates map[string]any) error {
	return updateByID(ctx, r.db, &models.Subcategory{}, id, updates)
}

func (r *repository) DeleteSubcategory(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &models.Subcategory{}, id)
}

func (r *repository) CreateColor(ctx context.Context, color *models.Color) (*models.Color, error) {
	if err := r.db.WithContext(ctx).Create(color).Error; err != nil {
		return nil, err
	}
	return color, nil
}

func (r *repository) ListColors(ctx context.Context, params pagination.Params) ([]models.Color, int64, error) {
	var colors []models.Color
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Color{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Order("id ASC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&colors).Error
	if err != nil {
		return nil, 0, err
	}
	return colors, total, nil
}

func (r *repository) UpdateColor(ctx context.Context, id int64, updates map[string]any) error {
	return updateByID(ctx, r.db, &models.Color{}, id, updates)
}

func (r *repository) DeleteColor(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &models.Color{}, id)
}

func (r *repository) CreateSize(ctx context.Context, size *models.Size) (*models.Size, error) {
	if err := r.db.WithContext(ctx).Create(size).Error; err != nil {
		return nil, err
	}
	return size, nil
}

func (r *repository) ListSizes(ctx context.Context, warehouseID int64, params pagination.Params) ([]models.Size, int64, error) {
	var sizes []models.Size
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Size{}).Where("warehouse_id = ?", warehouseID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Order("id ASC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&sizes).Error
	if err != nil {
		return nil, 0, err
	}
	return sizes, total, nil
}

func (r *repository) UpdateSize(ctx context.Context, id int64, updates map[string]any) error {
	return updateByID(ctx, r.db, &models.Size{}, id, updates)
}

func (r *repository) DeleteSize(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &models.Size{}, id)
}

func (r *repository) CreateMeasure(ctx context.Context, measure *models.Measure) (*models.Measure, error) {
	if err := r.db.WithContext(ctx).Create(measure).Error; err != nil {
		return nil, err
	}
	return measure, nil
}

func (r *repository) ListMeasures(ctx context.Context, params pagination.Params) ([]models.Measure, int64, error) {
	var measures []models.Measure
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Measure{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Order("id ASC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&measures).Error
	if err != nil {
		return nil, 0, err
	}
	return measures, total, nil
}

func (r *repository) UpdateMeasure(ctx context.Context, id int64, updates map[string]any) error {
	return updateByID(ctx, r.db, &models.Measure{}, id, updates)
}

func (r *repository) DeleteMeasure(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &models.Measure{}, id)
}

func (r *repository) CreateProductInformation(ctx context.Context, info *models.ProductInformation) (*models.ProductInformation, error) {
	if err := r.db.WithContext(ctx).Create(info).Error; err != nil {
		return nil, err
	}
	return info, nil
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("ProductInformation").
		Preload("Variants").
		Preload("Variants.Images").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListProducts(ctx context.Context, warehouseID int64, params pagination.Params) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Product{}).Where("warehouse_id = ?", warehouseID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Preload("Variants").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *repository) UpdateProduct(ctx context.Context, id int64, updates map[string]any) error {
	return updateByID(ctx, r.db, &models.Product{}, id, updates)
}

func (r *repository) DeleteProduct(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &models.Product{}, id)
}

func (r *repository) CreateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

func (r *repository) FindVariant(ctx context.Context, id int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("id = ?", id).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *repository) FindVariantByBarcode(ctx context.Context, warehouseID, barcode int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("product_variants.barcode = ? AND products.warehouse_id = ?", barcode, warehouseID).
		Preload("Images").
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *repository) ListVariants(ctx context.Context, productID int64, params pagination.Params) ([]models.ProductVariant, int64, error) {
	var variants []models.ProductVariant
	var total int64

	base := r.db.WithContext(ctx).Model(&models.ProductVariant{}).Where("product_id = ?", productID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Preload("Images").
		Order("id ASC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&variants).Error
	if err != nil {
		return nil, 0, err
	}
	return variants, total, nil
}

func (r *repository) UpdateVariant(ctx context.Context, id int64, updates map[string]any) error {
	return updateByID(ctx, r.db, &models.ProductVariant{}, id, updates)
}

func (r *repository) DeleteVariant(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, &models.ProductVariant{}, id)
}

func updateByID(ctx context.Context, db *gorm.DB, model any, id int64, updates map[string]any) error {
	result := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id int64) error {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
