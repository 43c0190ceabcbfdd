package stock

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestDeductAndRestore(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	guard := NewGuard()

	variant := seedVariant(t, db, 10)

	err := db.Transaction(func(tx *gorm.DB) error {
		updated, terr := guard.Deduct(ctx, tx, variant.ID, decimal.NewFromInt(4))
		if terr != nil {
			return terr
		}
		if !updated.Amount.Equal(decimal.NewFromInt(6)) {
			t.Fatalf("expected 6 after deduct, got %s", updated.Amount)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("deduct transaction: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		updated, terr := guard.Restore(ctx, tx, variant.ID, decimal.NewFromInt(3))
		if terr != nil {
			return terr
		}
		if !updated.Amount.Equal(decimal.NewFromInt(9)) {
			t.Fatalf("expected 9 after restore, got %s", updated.Amount)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("restore transaction: %v", err)
	}
}

func TestDeductInsufficientStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	guard := NewGuard()

	variant := seedVariant(t, db, 2)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, terr := guard.Deduct(ctx, tx, variant.ID, decimal.NewFromInt(5))
		return terr
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("unexpected error: %v", err)
	}

	var reloaded models.ProductVariant
	if err := db.First(&reloaded, variant.ID).Error; err != nil {
		t.Fatalf("reload variant: %v", err)
	}
	if !reloaded.Amount.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("stock changed on failed deduct: %s", reloaded.Amount)
	}
}

func TestOverwrite(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	guard := NewGuard()

	variant := seedVariant(t, db, 7)

	err := db.Transaction(func(tx *gorm.DB) error {
		updated, terr := guard.Overwrite(ctx, tx, variant.ID, decimal.NewFromInt(15))
		if terr != nil {
			return terr
		}
		if !updated.Amount.Equal(decimal.NewFromInt(15)) {
			t.Fatalf("expected 15 after overwrite, got %s", updated.Amount)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("overwrite transaction: %v", err)
	}
}

func TestDeductUnknownVariant(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	guard := NewGuard()

	err := db.Transaction(func(tx *gorm.DB) error {
		_, terr := guard.Deduct(context.Background(), tx, 9999, decimal.NewFromInt(1))
		return terr
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func seedVariant(t *testing.T, db *gorm.DB, amount int64) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		Barcode:      nextBarcode(),
		ProductID:    1,
		ComeInPrice:  decimal.NewFromInt(100),
		CurrentPrice: decimal.NewFromInt(150),
		Amount:       decimal.NewFromInt(amount),
		MeasureID:    1,
	}
	if err := db.Create(variant).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return variant
}

var barcodeSeq atomic.Int64

func nextBarcode() int64 {
	return 100000 + barcodeSeq.Add(1)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:stock_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.ProductVariant{}); err != nil {
		t.Fatalf("migrate variants: %v", err)
	}
	return db
}
