package revisions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javohirtm/ombor-backend/pkg/db"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/enums"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// StockGuard aligns variant stock with counted quantities under row locks.
type StockGuard interface {
	LockVariant(ctx context.Context, tx *gorm.DB, variantID int64) (*models.ProductVariant, error)
	Overwrite(ctx context.Context, tx *gorm.DB, variantID int64, amount decimal.Decimal) (*models.ProductVariant, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	stock StockGuard
}

// NewService builds the revision service with its dependencies.
func NewService(repo Repository, tx txRunner, stock StockGuard) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("revisions repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock guard required")
	}
	return &service{repo: repo, tx: tx, stock: stock}, nil
}

func (s *service) Start(ctx context.Context, input StartInput) (*models.Revision, error) {
	if input.AdminID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin identity missing")
	}
	if input.WarehouseID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "warehouse context missing")
	}

	revision := &models.Revision{
		WarehouseID: input.WarehouseID,
		Status:      enums.RevisionStatusCreated,
		CreatedBy:   input.AdminID,
		Notes:       input.Notes,
	}
	if _, err := s.repo.Create(ctx, revision); err != nil {
		if db.IsUniqueViolation(err, "uq_revisions_single_open") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "warehouse already has an active revision")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create revision")
	}
	return revision, nil
}

func (s *service) Active(ctx context.Context, warehouseID int64) (*models.Revision, error) {
	revision, err := s.repo.FindActiveByWarehouse(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active revision found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active revision")
	}
	return revision, nil
}

func (s *service) Get(ctx context.Context, revisionID int64) (*models.Revision, error) {
	revision, err := s.repo.FindByID(ctx, revisionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "revision not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load revision")
	}
	return revision, nil
}

func (s *service) List(ctx context.Context, warehouseID int64, params pagination.Params) (*pagination.Page, error) {
	revisions, total, err := s.repo.ListByWarehouse(ctx, warehouseID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list revisions")
	}
	page := pagination.NewPage(revisions, total, params)
	return &page, nil
}

// Scan upserts one counted line. The book quantity is snapshotted at
// the first scan of a variant; re-scans only move the actual count.
func (s *service) Scan(ctx context.Context, warehouseID, revisionID int64, input ScanInput) (*models.RevisionItem, error) {
	if input.ActualQuantity.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "actual quantity must not be negative")
	}

	var itemID int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		revision, err := repo.FindByID(ctx, revisionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "revision not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load revision")
		}
		if revision.WarehouseID != warehouseID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "revision belongs to another warehouse")
		}
		if revision.Status != enums.RevisionStatusCreated {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "revision is not active")
		}

		variant, err := repo.FindVariantByBarcode(ctx, warehouseID, input.Barcode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found").
					WithDetails(map[string]any{"barcode": input.Barcode})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
		}

		existing, err := repo.FindItem(ctx, revision.ID, variant.ID)
		switch {
		case err == nil:
			updates := map[string]any{
				"actual_quantity": input.ActualQuantity,
				"difference":      input.ActualQuantity.Sub(existing.SystemQuantity),
				"scanned_at":      time.Now().UTC(),
			}
			if input.Notes != nil {
				updates["notes"] = *input.Notes
			}
			if err := repo.UpdateItem(ctx, existing.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update revision item")
			}
			itemID = existing.ID
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			locked, err := s.stock.LockVariant(ctx, tx, variant.ID)
			if err != nil {
				return err
			}
			item := &models.RevisionItem{
				RevisionID:       revision.ID,
				ProductVariantID: variant.ID,
				SystemQuantity:   locked.Amount,
				ActualQuantity:   input.ActualQuantity,
				Difference:       input.ActualQuantity.Sub(locked.Amount),
				Notes:            input.Notes,
			}
			if _, err := repo.CreateItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create revision item")
			}
			itemID = item.ID
			return nil

		default:
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load revision item")
		}
	})
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload revision item")
	}
	return item, nil
}

// Complete aligns book stock with every counted quantity and closes the
// revision. Unscanned variants keep their book stock.
func (s *service) Complete(ctx context.Context, revisionID, adminID int64) (*models.Revision, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		revision, err := s.loadActive(ctx, repo, revisionID)
		if err != nil {
			return err
		}

		for _, item := range revision.Items {
			if _, err := s.stock.Overwrite(ctx, tx, item.ProductVariantID, item.ActualQuantity); err != nil {
				return err
			}
		}

		return repo.Update(ctx, revision.ID, map[string]any{
			"status":       enums.RevisionStatusCompleted,
			"completed_by": adminID,
			"completed_at": time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, revisionID)
}

// Cancel closes the revision without touching book stock.
func (s *service) Cancel(ctx context.Context, revisionID, adminID int64) (*models.Revision, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		revision, err := s.loadActive(ctx, repo, revisionID)
		if err != nil {
			return err
		}

		return repo.Update(ctx, revision.ID, map[string]any{
			"status":       enums.RevisionStatusCancelled,
			"cancelled_by": adminID,
			"cancelled_at": time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, revisionID)
}

func (s *service) Stats(ctx context.Context, revisionID int64) (*Statistics, error) {
	if _, err := s.Get(ctx, revisionID); err != nil {
		return nil, err
	}
	stats, err := s.repo.Statistics(ctx, revisionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "compute revision statistics")
	}
	return stats, nil
}

func (s *service) loadActive(ctx context.Context, repo Repository, revisionID int64) (*models.Revision, error) {
	revision, err := repo.FindByID(ctx, revisionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "revision not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load revision")
	}
	if revision.Status != enums.RevisionStatusCreated {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "revision is not active")
	}
	return revision, nil
}
