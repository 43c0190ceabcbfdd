package promotions

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Resolver answers "which promotion applies to this variant" inside a
// caller-owned transaction. Order pricing depends on it.
type Resolver struct {
	repo Repository
}

// NewResolver builds a resolver over the promotions repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// ActiveForVariant returns the winning promotion for the variant, or nil.
func (r *Resolver) ActiveForVariant(ctx context.Context, tx *gorm.DB, variantID int64) (*models.Promotion, error) {
	return r.repo.WithTx(tx).FindActiveForVariant(ctx, variantID)
}
