package orders

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for customer orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, orderID int64) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]models.Order, int64, error)
	Update(ctx context.Context, orderID int64, updates map[string]any) error
	CreateItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error)
	FindProduct(ctx context.Context, productID int64) (*models.Product, error)
}

// Service exposes the customer order operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	Get(ctx context.Context, userID, orderID int64) (*models.Order, error)
	List(ctx context.Context, userID int64, params pagination.Params) (*pagination.Page, error)
	Cancel(ctx context.Context, userID, orderID int64) (*models.Order, error)
}
