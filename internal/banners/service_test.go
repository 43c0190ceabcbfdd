package banners

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}

type fixture struct {
	db      *gorm.DB
	service Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), testTxRunner{db: db})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return &fixture{db: db, service: svc}
}

func TestApplySnapshotsOldPrice(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 200)
	banner := f.createBanner(t, decimal.NewFromInt(25), []int64{variant.ID})

	applied, err := f.service.Apply(ctx, banner.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := applied.ProductVariants[0]
	if got.OldPrice == nil || !got.OldPrice.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected old price 200, got %v", got.OldPrice)
	}
	if !got.CurrentPrice.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected discounted price 150, got %s", got.CurrentPrice)
	}
	if got.Discount == nil || !got.Discount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected discount 25, got %v", got.Discount)
	}

	// Re-applying keeps the original snapshot instead of compounding.
	reapplied, err := f.service.Apply(ctx, banner.ID)
	if err != nil {
		t.Fatalf("reapply: %v", err)
	}
	again := reapplied.ProductVariants[0]
	if again.OldPrice == nil || !again.OldPrice.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected snapshot kept at 200, got %v", again.OldPrice)
	}
	if !again.CurrentPrice.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected price still 150, got %s", again.CurrentPrice)
	}
}

func TestRevertRestoresPrices(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 200)
	banner := f.createBanner(t, decimal.NewFromInt(10), []int64{variant.ID})

	if _, err := f.service.Apply(ctx, banner.ID); err != nil {
		t.Fatalf("apply: %v", err)
	}
	reverted, err := f.service.Revert(ctx, banner.ID)
	if err != nil {
		t.Fatalf("revert: %v", err)
	}

	got := reverted.ProductVariants[0]
	if !got.CurrentPrice.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected restored price 200, got %s", got.CurrentPrice)
	}
	if got.OldPrice != nil || got.Discount != nil {
		t.Fatalf("expected cleared snapshot, got old=%v discount=%v", got.OldPrice, got.Discount)
	}

	// Reverting again is a no-op, not an error.
	if _, err := f.service.Revert(ctx, banner.ID); err != nil {
		t.Fatalf("second revert: %v", err)
	}
}

func TestApplyInactiveBanner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 200)
	banner := f.createBanner(t, decimal.NewFromInt(10), []int64{variant.ID})
	inactive := false
	if _, err := f.service.Update(ctx, banner.ID, UpdateInput{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err := f.service.Apply(ctx, banner.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	now := time.Now()

	cases := []CreateInput{
		{Title: "", ImageURL: "x", DiscountPercentage: decimal.NewFromInt(10), StartDate: now, EndDate: now.Add(time.Hour)},
		{Title: "sale", ImageURL: "x", DiscountPercentage: decimal.NewFromInt(120), StartDate: now, EndDate: now.Add(time.Hour)},
		{Title: "sale", ImageURL: "x", DiscountPercentage: decimal.NewFromInt(10), StartDate: now, EndDate: now},
	}
	for i, input := range cases {
		_, err := f.service.Create(ctx, input)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func (f *fixture) createBanner(t *testing.T, discount decimal.Decimal, variantIDs []int64) *models.Banner {
	t.Helper()
	banner, err := f.service.Create(context.Background(), CreateInput{
		Title:              "season sale",
		ImageURL:           "uploads/banner.jpg",
		DiscountPercentage: discount,
		StartDate:          time.Now(),
		EndDate:            time.Now().Add(24 * time.Hour),
		VariantIDs:         variantIDs,
	})
	if err != nil {
		t.Fatalf("create banner: %v", err)
	}
	return banner
}

func (f *fixture) seedVariant(t *testing.T, price int64) *models.ProductVariant {
	t.Helper()
	product := &models.Product{
		Name:                 dbtypes.Translated{"en": "test product"},
		ProductInformationID: 1,
		WarehouseID:          1,
		SubcategoryID:        1,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	variant := &models.ProductVariant{
		Barcode:      nextBarcode(),
		ProductID:    product.ID,
		ComeInPrice:  decimal.NewFromInt(price),
		CurrentPrice: decimal.NewFromInt(price),
		Amount:       decimal.NewFromInt(10),
		MeasureID:    1,
	}
	if err := f.db.Create(variant).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return variant
}

var barcodeSeq atomic.Int64

func init() {
	barcodeSeq.Store(600000)
}

func nextBarcode() int64 {
	return barcodeSeq.Add(1)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:banners_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.Banner{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
