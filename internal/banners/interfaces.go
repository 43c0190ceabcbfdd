package banners

import (
	"context"
	"time"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateInput carries create fields for a banner campaign.
type CreateInput struct {
	Title              string
	Description        *string
	ImageURL           string
	DiscountPercentage decimal.Decimal
	StartDate          time.Time
	EndDate            time.Time
	VariantIDs         []int64
}

// UpdateInput patches a banner; nil fields stay untouched.
type UpdateInput struct {
	Title              *string
	Description        *string
	ImageURL           *string
	DiscountPercentage *decimal.Decimal
	IsActive           *bool
	StartDate          *time.Time
	EndDate            *time.Time
}

// Repository defines persistence operations for banners.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, banner *models.Banner) (*models.Banner, error)
	FindByID(ctx context.Context, bannerID int64) (*models.Banner, error)
	List(ctx context.Context, params pagination.Params) ([]models.Banner, int64, error)
	Update(ctx context.Context, bannerID int64, updates map[string]any) error
	Delete(ctx context.Context, bannerID int64) error
	ReplaceVariants(ctx context.Context, bannerID int64, variantIDs []int64) error
	UpdateVariantPricing(ctx context.Context, variantID int64, updates map[string]any) error
}

// Service exposes the banner campaign operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Banner, error)
	Get(ctx context.Context, bannerID int64) (*models.Banner, error)
	List(ctx context.Context, params pagination.Params) (*pagination.Page, error)
	Update(ctx context.Context, bannerID int64, input UpdateInput) (*models.Banner, error)
	Delete(ctx context.Context, bannerID int64) error
	Apply(ctx context.Context, bannerID int64) (*models.Banner, error)
	Revert(ctx context.Context, bannerID int64) (*models.Banner, error)
}
