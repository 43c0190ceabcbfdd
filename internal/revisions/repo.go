package revisions

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/enums"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a revisions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, revision *models.Revision) (*models.Revision, error) {
	if err := r.db.WithContext(ctx).Create(revision).Error; err != nil {
		return nil, err
	}
	return revision, nil
}

func (r *repository) FindActiveByWarehouse(ctx context.Context, warehouseID int64) (*models.Revision, error) {
	var revision models.Revision
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("warehouse_id = ? AND status = ?", warehouseID, enums.RevisionStatusCreated).
		First(&revision).Error
	if err != nil {
		return nil, err
	}
	return &revision, nil
}

func (r *repository) FindByID(ctx context.Context, revisionID int64) (*models.Revision, error) {
	var revision models.Revision
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", revisionID).
		First(&revision).Error
	if err != nil {
		return nil, err
	}
	return &revision, nil
}

func (r *repository) Update(ctx context.Context, revisionID int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Revision{}).
		Where("id = ?", revisionID).
		Updates(updates).Error
}

func (r *repository) ListByWarehouse(ctx context.Context, warehouseID int64, params pagination.Params) ([]models.Revision, int64, error) {
	var revisions []models.Revision
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Revision{}).Where("warehouse_id = ?", warehouseID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&revisions).Error
	if err != nil {
		return nil, 0, err
	}
	return revisions, total, nil
}

func (r *repository) FindVariantByBarcode(ctx context.Context, warehouseID, barcode int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("product_variants.barcode = ? AND products.warehouse_id = ?", barcode, warehouseID).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *repository) FindItem(ctx context.Context, revisionID, variantID int64) (*models.RevisionItem, error) {
	var item models.RevisionItem
	err := r.db.WithContext(ctx).
		Where("revision_id = ? AND product_variant_id = ?", revisionID, variantID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindItemByID(ctx context.Context, itemID int64) (*models.RevisionItem, error) {
	var item models.RevisionItem
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.RevisionItem) (*models.RevisionItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) UpdateItem(ctx context.Context, itemID int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.RevisionItem{}).
		Where("id = ?", itemID).
		Updates(updates).Error
}

func (r *repository) Statistics(ctx context.Context, revisionID int64) (*Statistics, error) {
	var row struct {
		TotalItems       int64
		DiscrepancyCount int64
		TotalDifference  decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.RevisionItem{}).
		Select(
			"COUNT(id) AS total_items, "+
				"COUNT(CASE WHEN difference <> 0 THEN 1 END) AS discrepancy_count, "+
				"SUM(difference) AS total_difference",
		).
		Where("revision_id = ?", revisionID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalItems:       row.TotalItems,
		DiscrepancyCount: row.DiscrepancyCount,
	}
	if row.TotalDifference.Valid {
		stats.TotalDifference = row.TotalDifference.Decimal
	}
	return stats, nil
}
