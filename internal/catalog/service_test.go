package catalog

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
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

func TestCreateProductWritesInformation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	sub := f.seedSubcategory(t)
	brand := "Artel"
	product, err := f.service.CreateProduct(ctx, ProductInput{
		Name:        dbtypes.Translated{"en": "kettle", "uz": "choynak"},
		Information: ProductInformationInput{ProductType: "appliance", Brand: &brand},
		WarehouseID: 1,
		Subcategory: sub.ID,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.ProductInformation == nil {
		t.Fatal("expected information row to be loaded")
	}
	if product.ProductInformation.Brand == nil || *product.ProductInformation.Brand != "Artel" {
		t.Fatalf("expected brand Artel, got %v", product.ProductInformation.Brand)
	}
	if product.ProductInformation.WarehouseID != 1 {
		t.Fatalf("expected information scoped to warehouse 1, got %d", product.ProductInformation.WarehouseID)
	}
}

func TestCreateProductUnknownSubcategoryLeavesNoOrphan(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateProduct(ctx, ProductInput{
		Name:        dbtypes.Translated{"en": "kettle"},
		Information: ProductInformationInput{ProductType: "appliance"},
		WarehouseID: 1,
		Subcategory: 999,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	var count int64
	if err := f.db.Model(&models.ProductInformation{}).Count(&count).Error; err != nil {
		t.Fatalf("count information rows: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to drop information row, found %d", count)
	}
}

func TestCreateVariantBarcodeConflict(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	product := f.seedProduct(t, 1)
	barcode := nextBarcode()

	input := VariantInput{
		Barcode:      barcode,
		ProductID:    product.ID,
		ComeInPrice:  decimal.NewFromInt(50),
		CurrentPrice: decimal.NewFromInt(80),
		Amount:       decimal.NewFromInt(10),
		MeasureID:    1,
	}
	if _, err := f.service.CreateVariant(ctx, 1, input); err != nil {
		t.Fatalf("first variant: %v", err)
	}
	_, err := f.service.CreateVariant(ctx, 1, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateVariantForeignWarehouseForbidden(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	product := f.seedProduct(t, 2)
	_, err := f.service.CreateVariant(ctx, 1, VariantInput{
		Barcode:      nextBarcode(),
		ProductID:    product.ID,
		ComeInPrice:  decimal.NewFromInt(50),
		CurrentPrice: decimal.NewFromInt(80),
		Amount:       decimal.NewFromInt(10),
		MeasureID:    1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestVariantByBarcodeIsWarehouseScoped(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	product := f.seedProduct(t, 1)
	variant, err := f.service.CreateVariant(ctx, 1, VariantInput{
		Barcode:      nextBarcode(),
		ProductID:    product.ID,
		ComeInPrice:  decimal.NewFromInt(50),
		CurrentPrice: decimal.NewFromInt(80),
		Amount:       decimal.NewFromInt(10),
		MeasureID:    1,
	})
	if err != nil {
		t.Fatalf("create variant: %v", err)
	}

	found, err := f.service.GetVariantByBarcode(ctx, 1, variant.Barcode)
	if err != nil {
		t.Fatalf("lookup in own warehouse: %v", err)
	}
	if found.ID != variant.ID {
		t.Fatalf("expected variant %d, got %d", variant.ID, found.ID)
	}

	_, err = f.service.GetVariantByBarcode(ctx, 2, variant.Barcode)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found in other warehouse, got %v", err)
	}
}

func TestUpdateWithoutFieldsRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.UpdateProduct(ctx, 1, ProductUpdateInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListProductsPaginates(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.seedProduct(t, 1)
	}
	f.seedProduct(t, 2)

	page, err := f.service.ListProducts(ctx, 1, pagination.Params{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected total 3, got %d", page.Total)
	}
	products, ok := page.Items.([]models.Product)
	if !ok {
		t.Fatalf("unexpected items type %T", page.Items)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 items on page, got %d", len(products))
	}
}

func (f *fixture) seedSubcategory(t *testing.T) *models.Subcategory {
	t.Helper()
	category := &models.Category{Name: dbtypes.Translated{"en": "home"}}
	if err := f.db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	subcategory := &models.Subcategory{
		Name:       dbtypes.Translated{"en": "kitchen"},
		CategoryID: category.ID,
	}
	if err := f.db.Create(subcategory).Error; err != nil {
		t.Fatalf("seed subcategory: %v", err)
	}
	return subcategory
}

func (f *fixture) seedProduct(t *testing.T, warehouseID int64) *models.Product {
	t.Helper()
	info := &models.ProductInformation{ProductType: "appliance", WarehouseID: warehouseID}
	if err := f.db.Create(info).Error; err != nil {
		t.Fatalf("seed information: %v", err)
	}
	product := &models.Product{
		Name:                 dbtypes.Translated{"en": "test product"},
		ProductInformationID: info.ID,
		WarehouseID:          warehouseID,
		SubcategoryID:        1,
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

var barcodeSeq atomic.Int64

func init() {
	barcodeSeq.Store(800000)
}

func nextBarcode() int64 {
	return barcodeSeq.Add(1)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.Color{},
		&models.Size{},
		&models.Measure{},
		&models.ProductInformation{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Promotion{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
