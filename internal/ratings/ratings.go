package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateInput is one customer review submission.
type CreateInput struct {
	UserID    int64
	ProductID int64
	Rating    int
	Comment   string
	Pictures  []string
}

// ProductRatings is the listing payload with the running average.
type ProductRatings struct {
	Average decimal.Decimal `json:"average"`
	Page    pagination.Page `json:"page"`
}

// Repository defines persistence operations for ratings.
type Repository interface {
	Create(ctx context.Context, rating *models.Rating) (*models.Rating, error)
	ListByProduct(ctx context.Context, productID int64, params pagination.Params) ([]models.Rating, int64, error)
	AverageByProduct(ctx context.Context, productID int64) (decimal.Decimal, error)
	ProductExists(ctx context.Context, productID int64) (bool, error)
}

// Service exposes the rating operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Rating, error)
	ListByProduct(ctx context.Context, productID int64, params pagination.Params) (*ProductRatings, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a ratings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rating *models.Rating) (*models.Rating, error) {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return nil, err
	}
	return rating, nil
}

func (r *repository) ListByProduct(ctx context.Context, productID int64, params pagination.Params) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Rating{}).Where("product_id = ?", productID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

func (r *repository) AverageByProduct(ctx context.Context, productID int64) (decimal.Decimal, error) {
	var avg decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(rating)").
		Where("product_id = ?", productID).
		Scan(&avg).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !avg.Valid {
		return decimal.Zero, nil
	}
	return avg.Decimal.Round(2), nil
}

func (r *repository) ProductExists(ctx context.Context, productID int64) (bool, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Select("id").Where("id = ?", productID).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

type service struct {
	repo Repository
}

// NewService builds the ratings service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ratings repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Rating, error) {
	if input.UserID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	exists, err := s.repo.ProductExists(ctx, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	rating := &models.Rating{
		Rating:    input.Rating,
		Comment:   input.Comment,
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Pictures:  pq.StringArray(input.Pictures),
	}
	if _, err := s.repo.Create(ctx, rating); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rating")
	}
	return rating, nil
}

func (s *service) ListByProduct(ctx context.Context, productID int64, params pagination.Params) (*ProductRatings, error) {
	ratings, total, err := s.repo.ListByProduct(ctx, productID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ratings")
	}
	average, err := s.repo.AverageByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "average rating")
	}
	return &ProductRatings{
		Average: average,
		Page:    pagination.NewPage(ratings, total, params),
	}, nil
}
