package notifications

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for notifications.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error)
}

// Service exposes notification delivery-free operations: rows are
// written here and read back by the client, nothing is pushed.
type Service interface {
	Notify(ctx context.Context, input NotifyInput) (*models.Notification, error)
	List(ctx context.Context, userID int64, params pagination.Params) (*pagination.Page, error)
	MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error)
}
