package ratings

import (
	"context"
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

func newService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	dsn := "file:ratings_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Rating{}); err != nil {
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

func TestRatingBounds(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()
	product := seedProduct(t, db)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, CreateInput{UserID: 1, ProductID: product.ID, Rating: rating})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("rating %d: expected validation error, got %v", rating, err)
		}
	}

	created, err := svc.Create(ctx, CreateInput{
		UserID:    1,
		ProductID: product.ID,
		Rating:    5,
		Comment:   "solid",
		Pictures:  []string{"uploads/r1.jpg"},
	})
	if err != nil {
		t.Fatalf("create rating: %v", err)
	}
	if len(created.Pictures) != 1 {
		t.Fatalf("expected 1 picture, got %d", len(created.Pictures))
	}
}

func TestListComputesAverage(t *testing.T) {
	t.Parallel()

	svc, db := newService(t)
	ctx := context.Background()
	product := seedProduct(t, db)

	for user, rating := range map[int64]int{1: 5, 2: 4, 3: 3} {
		if _, err := svc.Create(ctx, CreateInput{UserID: user, ProductID: product.ID, Rating: rating}); err != nil {
			t.Fatalf("create rating: %v", err)
		}
	}

	listed, err := svc.ListByProduct(ctx, product.ID, pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if listed.Page.Total != 3 {
		t.Fatalf("expected 3 ratings, got %d", listed.Page.Total)
	}
	if !listed.Average.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected average 4, got %s", listed.Average)
	}

	// An unrated product averages to zero, not an error.
	other := seedProduct(t, db)
	empty, err := svc.ListByProduct(ctx, other.ID, pagination.Params{})
	if err != nil {
		t.Fatalf("list empty: %v", err)
	}
	if !empty.Average.IsZero() {
		t.Fatalf("expected zero average, got %s", empty.Average)
	}
}
