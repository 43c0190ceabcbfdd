package stock

import (
	"context"
	"errors"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Guard funnels every stock mutation through a row-locked read so two
// concurrent sales cannot both pass the availability check.
type Guard struct{}

// NewGuard builds the shared stock guard.
func NewGuard() *Guard {
	return &Guard{}
}

// LockVariant loads the variant with a FOR UPDATE lock inside tx.
func (g *Guard) LockVariant(ctx context.Context, tx *gorm.DB, variantID int64) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", variantID).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock product variant")
	}
	return &variant, nil
}

// Deduct removes qty from the variant's stock, failing when the stock
// would go negative.
func (g *Guard) Deduct(ctx context.Context, tx *gorm.DB, variantID int64, qty decimal.Decimal) (*models.ProductVariant, error) {
	variant, err := g.LockVariant(ctx, tx, variantID)
	if err != nil {
		return nil, err
	}
	if variant.Amount.LessThan(qty) {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock").
			WithDetails(map[string]any{
				"product_variant_id": variant.ID,
				"available":          variant.Amount.String(),
				"requested":          qty.String(),
			})
	}
	return g.write(ctx, tx, variant, variant.Amount.Sub(qty))
}

// Restore returns qty to the variant's stock.
func (g *Guard) Restore(ctx context.Context, tx *gorm.DB, variantID int64, qty decimal.Decimal) (*models.ProductVariant, error) {
	variant, err := g.LockVariant(ctx, tx, variantID)
	if err != nil {
		return nil, err
	}
	return g.write(ctx, tx, variant, variant.Amount.Add(qty))
}

// Overwrite replaces the variant's stock with the counted amount.
// Revision completion uses this to align book stock with reality.
func (g *Guard) Overwrite(ctx context.Context, tx *gorm.DB, variantID int64, amount decimal.Decimal) (*models.ProductVariant, error) {
	variant, err := g.LockVariant(ctx, tx, variantID)
	if err != nil {
		return nil, err
	}
	return g.write(ctx, tx, variant, amount)
}

func (g *Guard) write(ctx context.Context, tx *gorm.DB, variant *models.ProductVariant, amount decimal.Decimal) (*models.ProductVariant, error) {
	err := tx.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", variant.ID).
		Update("amount", amount).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update variant stock")
	}
	variant.Amount = amount
	return variant, nil
}
