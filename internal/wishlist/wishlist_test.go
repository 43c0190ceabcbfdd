package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := "file:wishlist_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Wishlist{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, db
}

func seedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:                 dbtypes.Translated{"en": "test product"},
		ProductInformationID: 1,
		WarehouseID:          1,
		SubcategoryID:        1,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestDuplicateAddConflicts(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()
	product := seedProduct(t, db)

	if _, err := svc.Add(ctx, 1, product.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := svc.Add(ctx, 1, product.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Another user can still save the same product.
	if _, err := svc.Add(ctx, 2, product.ID); err != nil {
		t.Fatalf("add for other user: %v", err)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	_, err := svc.Add(context.Background(), 1, 999)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveAndList(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()
	first := seedProduct(t, db)
	second := seedProduct(t, db)

	if _, err := svc.Add(ctx, 1, first.ID); err != nil {
		t.Fatalf("add first: %v", err)
	}
	if _, err := svc.Add(ctx, 1, second.ID); err != nil {
		t.Fatalf("add second: %v", err)
	}

	if err := svc.Remove(ctx, 1, first.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	err := svc.Remove(ctx, 1, first.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on double remove, got %v", err)
	}

	page, err := svc.List(ctx, 1, pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1 entry, got %d", page.Total)
	}
}
