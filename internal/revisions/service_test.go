package revisions

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/javohirtm/ombor-backend/internal/stock"
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
	svc, err := NewService(NewRepository(db), testTxRunner{db: db}, stock.NewGuard())
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return &fixture{db: db, service: svc}
}

func TestStartSecondRevisionConflicts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.service.Start(ctx, StartInput{WarehouseID: 1, AdminID: 1}); err != nil {
		t.Fatalf("first start: %v", err)
	}
	_, err := f.service.Start(ctx, StartInput{WarehouseID: 1, AdminID: 2})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// A different warehouse is unaffected.
	if _, err := f.service.Start(ctx, StartInput{WarehouseID: 2, AdminID: 1}); err != nil {
		t.Fatalf("start for other warehouse: %v", err)
	}
}

func TestScanSnapshotsSystemQuantityOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 1, 20)
	revision, err := f.service.Start(ctx, StartInput{WarehouseID: 1, AdminID: 1})
	if err != nil {
		t.Fatalf("start revision: %v", err)
	}

	item, err := f.service.Scan(ctx, 1, revision.ID, ScanInput{
		Barcode:        variant.Barcode,
		ActualQuantity: decimal.NewFromInt(18),
	})
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if !item.SystemQuantity.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected system 20, got %s", item.SystemQuantity)
	}
	if !item.Difference.Equal(decimal.NewFromInt(-2)) {
		t.Fatalf("expected difference -2, got %s", item.Difference)
	}

	// Book stock moves between scans must not disturb the snapshot.
	if err := f.db.Model(&models.ProductVariant{}).
		Where("id = ?", variant.ID).
		Update("amount", decimal.NewFromInt(99)).Error; err != nil {
		t.Fatalf("shift stock: %v", err)
	}

	rescanned, err := f.service.Scan(ctx, 1, revision.ID, ScanInput{
		Barcode:        variant.Barcode,
		ActualQuantity: decimal.NewFromInt(25),
	})
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if rescanned.ID != item.ID {
		t.Fatalf("expected upsert of the same item, got new id %d", rescanned.ID)
	}
	if !rescanned.SystemQuantity.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected snapshot kept at 20, got %s", rescanned.SystemQuantity)
	}
	if !rescanned.Difference.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected difference 5, got %s", rescanned.Difference)
	}
}

func TestScanRejectsForeignWarehouse(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 1, 10)
	revision, err := f.service.Start(ctx, StartInput{WarehouseID: 1, AdminID: 1})
	if err != nil {
		t.Fatalf("start revision: %v", err)
	}

	_, err = f.service.Scan(ctx, 2, revision.ID, ScanInput{
		Barcode:        variant.Barcode,
		ActualQuantity: decimal.NewFromInt(1),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCompleteOverwritesStock(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	counted := f.seedVariant(t, 1, 20)
	untouched := f.seedVariant(t, 1, 7)

	revision, err := f.service.Start(ctx, StartInput{WarehouseID: 1, AdminID: 1})
	if err != nil {
		t.Fatalf("start revision: %v", err)
	}
	if _, err := f.service.Scan(ctx, 1, revision.ID, ScanInput{
		Barcode:        counted.Barcode,
		ActualQuantity: decimal.NewFromInt(17),
	}); err != nil {
		t.Fatalf("scan: %v", err)
	}

	completed, err := f.service.Complete(ctx, revision.ID, 5)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.CompletedBy == nil || *completed.CompletedBy != 5 {
		t.Fatalf("expected completed_by 5, got %v", completed.CompletedBy)
	}
	if completed.CompletedAt == nil {
		t.Fatal("expected completed_at to be stamped")
	}

	f.assertStock(t, counted.ID, 17)
	f.assertStock(t, untouched.ID, 7)

	// A closed revision rejects further scans and transitions.
	_, err = f.service.Scan(ctx, 1, revision.ID, ScanInput{
		Barcode:        counted.Barcode,
		ActualQuantity: decimal.NewFromInt(1),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on scan, got %v", err)
	}
	_, err = f.service.Cancel(ctx, revision.ID, 5)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on cancel, got %v", err)
	}
}

func TestCancelKeepsStock(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 1, 20)
	revision, err := f.service.Start(ctx, StartInput{WarehouseID: 1, AdminID: 1})
	if err != nil {
		t.Fatalf("start revision: %v", err)
	}
	if _, err := f.service.Scan(ctx, 1, revision.ID, ScanInput{
		Barcode:        variant.Barcode,
		ActualQuantity: decimal.NewFromInt(3),
	}); err != nil {
		t.Fatalf("scan: %v", err)
	}

	cancelled, err := f.service.Cancel(ctx, revision.ID, 9)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.CancelledBy == nil || *cancelled.CancelledBy != 9 {
		t.Fatalf("expected cancelled_by 9, got %v", cancelled.CancelledBy)
	}
	if cancelled.CancelledAt == nil {
		t.Fatal("expected cancelled_at to be stamped")
	}

	f.assertStock(t, variant.ID, 20)

	// Cancelling frees the warehouse for a new revision.
	if _, err := f.service.Start(ctx, StartInput{WarehouseID: 1, AdminID: 1}); err != nil {
		t.Fatalf("restart after cancel: %v", err)
	}
}

func TestStatistics(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	exact := f.seedVariant(t, 1, 10)
	short := f.seedVariant(t, 1, 10)
	over := f.seedVariant(t, 1, 10)

	revision, err := f.service.Start(ctx, StartInput{WarehouseID: 1, AdminID: 1})
	if err != nil {
		t.Fatalf("start revision: %v", err)
	}
	scans := []struct {
		variant *models.ProductVariant
		actual  int64
	}{
		{exact, 10},
		{short, 7},
		{over, 12},
	}
	for _, scan := range scans {
		if _, err := f.service.Scan(ctx, 1, revision.ID, ScanInput{
			Barcode:        scan.variant.Barcode,
			ActualQuantity: decimal.NewFromInt(scan.actual),
		}); err != nil {
			t.Fatalf("scan %d: %v", scan.variant.ID, err)
		}
	}

	stats, err := f.service.Stats(ctx, revision.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalItems != 3 {
		t.Fatalf("expected 3 items, got %d", stats.TotalItems)
	}
	if stats.DiscrepancyCount != 2 {
		t.Fatalf("expected 2 discrepancies, got %d", stats.DiscrepancyCount)
	}
	if !stats.TotalDifference.Equal(decimal.NewFromInt(-1)) {
		t.Fatalf("expected total difference -1, got %s", stats.TotalDifference)
	}
}

func (f *fixture) seedVariant(t *testing.T, warehouseID, amount int64) *models.ProductVariant {
	t.Helper()
	product := &models.Product{
		Name:                 dbtypes.Translated{"en": "test product"},
		ProductInformationID: 1,
		WarehouseID:          warehouseID,
		SubcategoryID:        1,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	price := decimal.NewFromInt(100)
	variant := &models.ProductVariant{
		Barcode:      nextBarcode(),
		ProductID:    product.ID,
		ComeInPrice:  price,
		CurrentPrice: price,
		Amount:       decimal.NewFromInt(amount),
		MeasureID:    1,
	}
	if err := f.db.Create(variant).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return variant
}

func (f *fixture) assertStock(t *testing.T, variantID, want int64) {
	t.Helper()
	var variant models.ProductVariant
	if err := f.db.First(&variant, variantID).Error; err != nil {
		t.Fatalf("reload variant: %v", err)
	}
	if !variant.Amount.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("expected stock %d, got %s", want, variant.Amount)
	}
}

var barcodeSeq atomic.Int64

func init() {
	barcodeSeq.Store(700000)
}

func nextBarcode() int64 {
	return barcodeSeq.Add(1)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:revisions_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.Revision{},
		&models.RevisionItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// sqlite supports partial indexes, so the single-active guard
	// applies in tests too.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_revisions_single_open ON revisions (warehouse_id) WHERE status = 'created'`).Error
	if err != nil {
		t.Fatalf("create partial index: %v", err)
	}
	return db
}
