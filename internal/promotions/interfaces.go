package promotions

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for promotions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, promotion *models.Promotion) (*models.Promotion, error)
	FindByID(ctx context.Context, id int64) (*models.Promotion, error)
	ListByWarehouse(ctx context.Context, warehouseID int64, params pagination.Params) ([]models.Promotion, int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
	ReplaceVariants(ctx context.Context, promotion *models.Promotion, variantIDs []int64) error
	FindActiveForVariant(ctx context.Context, variantID int64) (*models.Promotion, error)
}

// Service exposes promotion management and discount resolution.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Promotion, error)
	Get(ctx context.Context, warehouseID, id int64) (*models.Promotion, error)
	List(ctx context.Context, warehouseID int64, params pagination.Params) (*pagination.Page, error)
	Update(ctx context.Context, warehouseID, id int64, input UpdateInput) (*models.Promotion, error)
	Delete(ctx context.Context, warehouseID, id int64) error
	AttachVariants(ctx context.Context, warehouseID, id int64, variantIDs []int64) (*models.Promotion, error)
}
