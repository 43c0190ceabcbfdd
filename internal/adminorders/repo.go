package adminorders

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/enums"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an admin orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.AdminOrder) (*models.AdminOrder, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindOpenByAdmin(ctx context.Context, adminID int64) (*models.AdminOrder, error) {
	var order models.AdminOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.ProductVariant").
		Where("by = ? AND status = ?", adminID, enums.AdminOrderStatusOpened).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByID(ctx context.Context, orderID int64) (*models.AdminOrder, error) {
	var order models.AdminOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.ProductVariant").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateOrder(ctx context.Context, orderID int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminOrder{}).
		Where("id = ?", orderID).
		Updates(updates).Error
}

func (r *repository) ListClosedByAdmin(ctx context.Context, adminID int64, params pagination.Params) ([]models.AdminOrder, int64, error) {
	var orders []models.AdminOrder
	var total int64

	base := r.db.WithContext(ctx).
		Model(&models.AdminOrder{}).
		Where("by = ? AND status <> ?", adminID, enums.AdminOrderStatusOpened)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Preload("Items").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
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

func (r *repository) FindItem(ctx context.Context, orderID, variantID int64) (*models.AdminOrderItem, error) {
	var item models.AdminOrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_variant_id = ?", orderID, variantID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindItemByID(ctx context.Context, itemID int64) (*models.AdminOrderItem, error) {
	var item models.AdminOrderItem
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, item *models.AdminOrderItem) (*models.AdminOrderItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) UpdateItem(ctx context.Context, itemID int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminOrderItem{}).
		Where("id = ?", itemID).
		Updates(updates).Error
}

func (r *repository) DeleteItem(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).Delete(&models.AdminOrderItem{}, itemID).Error
}
