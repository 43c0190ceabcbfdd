package promotions

import (
	"context"
	"errors"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a promotions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, promotion *models.Promotion) (*models.Promotion, error) {
	if err := r.db.WithContext(ctx).Create(promotion).Error; err != nil {
		return nil, err
	}
	return promotion, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Promotion, error) {
	var promotion models.Promotion
	err := r.db.WithContext(ctx).
		Preload("ProductVariants").
		Where("id = ?", id).
		First(&promotion).Error
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *repository) ListByWarehouse(ctx context.Context, warehouseID int64, params pagination.Params) ([]models.Promotion, int64, error) {
	var promotions []models.Promotion
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Promotion{}).Where("warehouse_id = ?", warehouseID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&promotions).Error
	if err != nil {
		return nil, 0, err
	}
	return promotions, total, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Promotion{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Promotion{}, id).Error
}

func (r *repository) ReplaceVariants(ctx context.Context, promotion *models.Promotion, variantIDs []int64) error {
	var variants []models.ProductVariant
	if len(variantIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", variantIDs).Find(&variants).Error; err != nil {
			return err
		}
		if len(variants) != len(variantIDs) {
			return gorm.ErrRecordNotFound
		}
	}
	return r.db.WithContext(ctx).Model(promotion).Association("ProductVariants").Replace(variants)
}

// FindActiveForVariant returns the most recently created active
// promotion covering the variant, or nil when none applies.
func (r *repository) FindActiveForVariant(ctx context.Context, variantID int64) (*models.Promotion, error) {
	var promotion models.Promotion
	err := r.db.WithContext(ctx).
		Joins("JOIN promotion_product_variants ppv ON ppv.promotion_id = promotions.id").
		Where("ppv.product_variant_id = ? AND promotions.is_active = ?", variantID, true).
		Order("promotions.created_at DESC").
		First(&promotion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}
