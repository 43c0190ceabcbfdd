package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/javohirtm/ombor-backend/pkg/db"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for wishlists.
type Repository interface {
	Add(ctx context.Context, entry *models.Wishlist) (*models.Wishlist, error)
	Remove(ctx context.Context, userID, productID int64) (int64, error)
	ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]models.Wishlist, int64, error)
	ProductExists(ctx context.Context, productID int64) (bool, error)
}

// Service exposes the wishlist operations.
type Service interface {
	Add(ctx context.Context, userID, productID int64) (*models.Wishlist, error)
	Remove(ctx context.Context, userID, productID int64) error
	List(ctx context.Context, userID int64, params pagination.Params) (*pagination.Page, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a wishlist repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, entry *models.Wishlist) (*models.Wishlist, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *repository) Remove(ctx context.Context, userID, productID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Wishlist{})
	return result.RowsAffected, result.Error
}

func (r *repository) ListByUser(ctx context.Context, userID int64, params pagination.Params) ([]models.Wishlist, int64, error) {
	var entries []models.Wishlist
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Wishlist{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Preload("Product").
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
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

// NewService builds the wishlist service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	return &service{repo: repo}, nil
}

// Add saves the product for the user. Saving the same product twice is
// a conflict, surfaced from the unique (user, product) index.
func (s *service) Add(ctx context.Context, userID, productID int64) (*models.Wishlist, error) {
	if userID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	exists, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check product")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	entry := &models.Wishlist{UserID: userID, ProductID: productID}
	if _, err := s.repo.Add(ctx, entry); err != nil {
		if db.IsUniqueViolation(err, "uq_user_product") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product already in wishlist")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist entry")
	}
	return entry, nil
}

func (s *service) Remove(ctx context.Context, userID, productID int64) error {
	removed, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist entry")
	}
	if removed == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "wishlist entry not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID int64, params pagination.Params) (*pagination.Page, error) {
	entries, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	page := pagination.NewPage(entries, total, params)
	return &page, nil
}
