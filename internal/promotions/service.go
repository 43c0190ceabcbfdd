package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// NewService builds the promotions service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("promotions repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Promotion, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion name required")
	}
	if err := validateDiscount(input.Discount); err != nil {
		return nil, err
	}
	if input.ProductLimit > 0 && len(input.VariantIDs) > input.ProductLimit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant list exceeds product limit")
	}

	promotion := &models.Promotion{
		Name:         strings.TrimSpace(input.Name),
		Discount:     input.Discount,
		ProductLimit: input.ProductLimit,
		IsActive:     true,
		WarehouseID:  input.WarehouseID,
	}
	if input.IsActive != nil {
		promotion.IsActive = *input.IsActive
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Create(ctx, promotion); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create promotion")
		}
		if len(input.VariantIDs) > 0 {
			if err := repo.ReplaceVariants(ctx, promotion, input.VariantIDs); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "one or more variants not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach promotion variants")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, input.WarehouseID, promotion.ID)
}

func (s *service) Get(ctx context.Context, warehouseID, id int64) (*models.Promotion, error) {
	promotion, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load promotion")
	}
	if promotion.WarehouseID != warehouseID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "promotion does not belong to warehouse")
	}
	return promotion, nil
}

func (s *service) List(ctx context.Context, warehouseID int64, params pagination.Params) (*pagination.Page, error) {
	promotions, total, err := s.repo.ListByWarehouse(ctx, warehouseID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list promotions")
	}
	page := pagination.NewPage(promotions, total, params)
	return &page, nil
}

func (s *service) Update(ctx context.Context, warehouseID, id int64, input UpdateInput) (*models.Promotion, error) {
	if _, err := s.Get(ctx, warehouseID, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "promotion name required")
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Discount != nil {
		if err := validateDiscount(*input.Discount); err != nil {
			return nil, err
		}
		updates["discount"] = *input.Discount
	}
	if input.ProductLimit != nil {
		updates["product_limit"] = *input.ProductLimit
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update promotion")
		}
	}
	return s.Get(ctx, warehouseID, id)
}

func (s *service) Delete(ctx context.Context, warehouseID, id int64) error {
	if _, err := s.Get(ctx, warehouseID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete promotion")
	}
	return nil
}

func (s *service) AttachVariants(ctx context.Context, warehouseID, id int64, variantIDs []int64) (*models.Promotion, error) {
	promotion, err := s.Get(ctx, warehouseID, id)
	if err != nil {
		return nil, err
	}
	if promotion.ProductLimit > 0 && len(variantIDs) > promotion.ProductLimit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant list exceeds product limit")
	}
	if err := s.repo.ReplaceVariants(ctx, promotion, variantIDs); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "one or more variants not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach promotion variants")
	}
	return s.Get(ctx, warehouseID, id)
}

func validateDiscount(discount decimal.Decimal) error {
	if discount.IsNegative() || discount.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100")
	}
	return nil
}
