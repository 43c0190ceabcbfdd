package banners

import (
	"context"
	"errors"
	"fmt"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo Repository
	tx   txRunner
}

var hundred = decimal.NewFromInt(100)

// NewService builds the banner service with its dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("banners repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Banner, error) {
	if input.Title == "" || input.ImageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title and image required")
	}
	if err := validateDiscount(input.DiscountPercentage); err != nil {
		return nil, err
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must be after start date")
	}

	var bannerID int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		banner := &models.Banner{
			Title:              input.Title,
			Description:        input.Description,
			ImageURL:           input.ImageURL,
			DiscountPercentage: input.DiscountPercentage,
			IsActive:           true,
			StartDate:          input.StartDate,
			EndDate:            input.EndDate,
		}
		if _, err := repo.Create(ctx, banner); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create banner")
		}
		bannerID = banner.ID

		if len(input.VariantIDs) > 0 {
			if err := repo.ReplaceVariants(ctx, banner.ID, input.VariantIDs); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach banner variants")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, bannerID)
}

func (s *service) Get(ctx context.Context, bannerID int64) (*models.Banner, error) {
	banner, err := s.repo.FindByID(ctx, bannerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load banner")
	}
	return banner, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*pagination.Page, error) {
	banners, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	page := pagination.NewPage(banners, total, params)
	return &page, nil
}

func (s *service) Update(ctx context.Context, bannerID int64, input UpdateInput) (*models.Banner, error) {
	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.DiscountPercentage != nil {
		if err := validateDiscount(*input.DiscountPercentage); err != nil {
			return nil, err
		}
		updates["discount_percentage"] = *input.DiscountPercentage
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.StartDate != nil {
		updates["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		updates["end_date"] = *input.EndDate
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.Update(ctx, bannerID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update banner")
	}
	return s.Get(ctx, bannerID)
}

func (s *service) Delete(ctx context.Context, bannerID int64) error {
	if err := s.repo.Delete(ctx, bannerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete banner")
	}
	return nil
}

// Apply pushes the banner discount onto every attached variant. The
// pre-campaign price is kept in old_price so Revert can restore it;
// re-applying keeps the original snapshot.
func (s *service) Apply(ctx context.Context, bannerID int64) (*models.Banner, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		banner, err := repo.FindByID(ctx, bannerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load banner")
		}
		if !banner.IsActive {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "banner is not active")
		}

		factor := hundred.Sub(banner.DiscountPercentage).Div(hundred)
		for _, variant := range banner.ProductVariants {
			base := variant.CurrentPrice
			if variant.OldPrice != nil {
				base = *variant.OldPrice
			}
			err := repo.UpdateVariantPricing(ctx, variant.ID, map[string]any{
				"old_price":     base,
				"discount":      banner.DiscountPercentage,
				"current_price": base.Mul(factor).Round(2),
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply banner discount")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, bannerID)
}

// Revert restores the snapshotted prices and clears the discount on
// every attached variant. Variants without a snapshot are untouched.
func (s *service) Revert(ctx context.Context, bannerID int64) (*models.Banner, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		banner, err := repo.FindByID(ctx, bannerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load banner")
		}

		for _, variant := range banner.ProductVariants {
			if variant.OldPrice == nil {
				continue
			}
			err := repo.UpdateVariantPricing(ctx, variant.ID, map[string]any{
				"current_price": *variant.OldPrice,
				"discount":      nil,
				"old_price":     nil,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revert banner discount")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, bannerID)
}

func validateDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100")
	}
	return nil
}
