package banners

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a banners repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (r *repository) FindByID(ctx context.Context, bannerID int64) (*models.Banner, error) {
	var banner models.Banner
	err := r.db.WithContext(ctx).
		Preload("ProductVariants").
		Where("id = ?", bannerID).
		First(&banner).Error
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Banner, int64, error) {
	var banners []models.Banner
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Banner{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&banners).Error
	if err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

func (r *repository) Update(ctx context.Context, bannerID int64, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.Banner{}).
		Where("id = ?", bannerID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, bannerID int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", bannerID).Delete(&models.Banner{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ReplaceVariants(ctx context.Context, bannerID int64, variantIDs []int64) error {
	var variants []models.ProductVariant
	if len(variantIDs) > 0 {
		err := r.db.WithContext(ctx).Where("id IN ?", variantIDs).Find(&variants).Error
		if err != nil {
			return err
		}
		if len(variants) != len(variantIDs) {
			return gorm.ErrRecordNotFound
		}
	}
	banner := models.Banner{ID: bannerID}
	return r.db.WithContext(ctx).Model(&banner).Association("ProductVariants").Replace(variants)
}

func (r *repository) UpdateVariantPricing(ctx context.Context, variantID int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", variantID).
		Updates(updates).Error
}
