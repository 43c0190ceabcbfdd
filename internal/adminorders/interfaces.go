package adminorders

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository defines persistence operations for admin orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.AdminOrder) (*models.AdminOrder, error)
	FindOpenByAdmin(ctx context.Context, adminID int64) (*models.AdminOrder, error)
	FindByID(ctx context.Context, orderID int64) (*models.AdminOrder, error)
	UpdateOrder(ctx context.Context, orderID int64, updates map[string]any) error
	ListClosedByAdmin(ctx context.Context, adminID int64, params pagination.Params) ([]models.AdminOrder, int64, error)
	FindVariantByBarcode(ctx context.Context, warehouseID, barcode int64) (*models.ProductVariant, error)
	FindItem(ctx context.Context, orderID, variantID int64) (*models.AdminOrderItem, error)
	FindItemByID(ctx context.Context, itemID int64) (*models.AdminOrderItem, error)
	CreateItem(ctx context.Context, item *models.AdminOrderItem) (*models.AdminOrderItem, error)
	UpdateItem(ctx context.Context, itemID int64, updates map[string]any) error
	DeleteItem(ctx context.Context, itemID int64) error
}

// Service defines the cashier order lifecycle.
type Service interface {
	Open(ctx context.Context, input OpenInput) (*models.AdminOrder, error)
	CurrentOpen(ctx context.Context, adminID int64) (*models.AdminOrder, error)
	GetByID(ctx context.Context, orderID int64) (*models.AdminOrder, error)
	ListClosed(ctx context.Context, adminID int64, params pagination.Params) (*pagination.Page, error)
	AddItems(ctx context.Context, adminID, orderID, warehouseID int64, items []AddItemInput) (*models.AdminOrder, error)
	UpdateItemQuantity(ctx context.Context, adminID, itemID int64, quantity decimal.Decimal) (*models.AdminOrder, error)
	DeleteItem(ctx context.Context, adminID, itemID int64) (*models.AdminOrder, error)
	ReturnItem(ctx context.Context, itemID int64, input ReturnInput) (*models.AdminOrderItem, error)
	Close(ctx context.Context, adminID int64, input CloseInput) (*CloseResult, error)
	CompleteSale(ctx context.Context, input CompleteSaleInput) (*models.AdminOrder, *CloseResult, error)
}
