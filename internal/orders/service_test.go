package orders

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/javohirtm/ombor-backend/internal/notifications"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
	"github.com/javohirtm/ombor-backend/pkg/enums"
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
	notifier, err := notifications.NewService(notifications.NewRepository(db))
	if err != nil {
		t.Fatalf("build notifier: %v", err)
	}
	svc, err := NewService(NewRepository(db), testTxRunner{db: db}, notifier)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return &fixture{db: db, service: svc}
}

func TestCreateComputesTotals(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	cheap := f.seedProduct(t, 30)
	dear := f.seedProduct(t, 100)

	order, err := f.service.Create(ctx, CreateInput{
		UserID: 7,
		Items: []ItemInput{
			{ProductID: cheap.ID, Quantity: 2},
			{ProductID: dear.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if order.Type != enums.OrderTypeRegular {
		t.Fatalf("expected regular type, got %s", order.Type)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(160)) {
		t.Fatalf("expected total 160, got %s", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}

	// A notification row is written for the transition.
	var count int64
	if err := f.db.Model(&models.Notification{}).
		Where("order_id = ?", order.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 notification, got %d", count)
	}
}

func TestCreateUnknownProductAborts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	product := f.seedProduct(t, 30)
	_, err := f.service.Create(ctx, CreateInput{
		UserID: 7,
		Items: []ItemInput{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	var count int64
	if err := f.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to drop order, found %d", count)
	}
}

func TestCancelPendingOnly(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	product := f.seedProduct(t, 30)
	order, err := f.service.Create(ctx, CreateInput{
		UserID: 7,
		Items:  []ItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	cancelled, err := f.service.Cancel(ctx, 7, order.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != enums.OrderStatusCanceled {
		t.Fatalf("expected canceled, got %s", cancelled.Status)
	}
	if cancelled.CanceledAt == nil {
		t.Fatal("expected canceled_at to be stamped")
	}

	_, err = f.service.Cancel(ctx, 7, order.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestOrdersAreOwnerScoped(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	product := f.seedProduct(t, 30)
	order, err := f.service.Create(ctx, CreateInput{
		UserID: 7,
		Items:  []ItemInput{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	_, err = f.service.Get(ctx, 8, order.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for other user, got %v", err)
	}
	_, err = f.service.Cancel(ctx, 8, order.ID)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for other user cancel, got %v", err)
	}
}

var barcodeSeq atomic.Int64

func init() {
	barcodeSeq.Store(900000)
}

func (f *fixture) seedProduct(t *testing.T, price int64) *models.Product {
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
		Barcode:      barcodeSeq.Add(1),
		ProductID:    product.ID,
		ComeInPrice:  decimal.NewFromInt(price),
		CurrentPrice: decimal.NewFromInt(price),
		IsMain:       true,
		Amount:       decimal.NewFromInt(100),
		MeasureID:    1,
	}
	if err := f.db.Create(variant).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return product
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
