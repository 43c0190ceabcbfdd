package revisions

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for stock revisions.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, revision *models.Revision) (*models.Revision, error)
	FindActiveByWarehouse(ctx context.Context, warehouseID int64) (*models.Revision, error)
	FindByID(ctx context.Context, revisionID int64) (*models.Revision, error)
	Update(ctx context.Context, revisionID int64, updates map[string]any) error
	ListByWarehouse(ctx context.Context, warehouseID int64, params pagination.Params) ([]models.Revision, int64, error)
	FindVariantByBarcode(ctx context.Context, warehouseID, barcode int64) (*models.ProductVariant, error)
	FindItem(ctx context.Context, revisionID, variantID int64) (*models.RevisionItem, error)
	FindItemByID(ctx context.Context, itemID int64) (*models.RevisionItem, error)
	CreateItem(ctx context.Context, item *models.RevisionItem) (*models.RevisionItem, error)
	UpdateItem(ctx context.Context, itemID int64, updates map[string]any) error
	Statistics(ctx context.Context, revisionID int64) (*Statistics, error)
}

// Service defines the stock audit workflow.
type Service interface {
	Start(ctx context.Context, input StartInput) (*models.Revision, error)
	Active(ctx context.Context, warehouseID int64) (*models.Revision, error)
	Get(ctx context.Context, revisionID int64) (*models.Revision, error)
	List(ctx context.Context, warehouseID int64, params pagination.Params) (*pagination.Page, error)
	Scan(ctx context.Context, warehouseID, revisionID int64, input ScanInput) (*models.RevisionItem, error)
	Complete(ctx context.Context, revisionID, adminID int64) (*models.Revision, error)
	Cancel(ctx context.Context, revisionID, adminID int64) (*models.Revision, error)
	Stats(ctx context.Context, revisionID int64) (*Statistics, error)
}
