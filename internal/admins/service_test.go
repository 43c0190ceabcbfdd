package admins

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/javohirtm/ombor-backend/pkg/auth"
	"github.com/javohirtm/ombor-backend/pkg/config"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/security"
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

var testJWT = config.JWTConfig{
	Secret:            "test-secret-test-secret-test-secret",
	Issuer:            "ombor-test",
	ExpirationMinutes: 15,
}

type fixture struct {
	db      *gorm.DB
	service Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db), testTxRunner{db: db}, testJWT, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return &fixture{db: db, service: svc}
}

func TestCreateGeneratesTempPassword(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	result, err := f.service.Create(ctx, CreateInput{
		FullName:    "Dilshod Karimov",
		PhoneNumber: "+998901112233",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if result.TempPassword == nil {
		t.Fatal("expected a generated temp password")
	}

	ok, err := security.VerifyPassword(*result.TempPassword, result.Admin.PasswordHash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("temp password does not match stored hash")
	}
}

func TestCreateDuplicatePhoneConflicts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	input := CreateInput{FullName: "A", PhoneNumber: "+998900000001", Password: "secret123"}
	if _, err := f.service.Create(ctx, input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := f.service.Create(ctx, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginMintsScopedToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	role := f.seedRole(t, 3, "manager", false)
	roleID := role.ID
	created, err := f.service.Create(ctx, CreateInput{
		FullName:    "B",
		PhoneNumber: "+998900000002",
		Password:    "secret123",
		RoleID:      &roleID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	result, err := f.service.Login(ctx, LoginInput{PhoneNumber: "+998900000002", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := auth.ParseAccessToken(testJWT, result.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.AdminID != created.Admin.ID {
		t.Fatalf("expected admin %d, got %d", created.Admin.ID, claims.AdminID)
	}
	if claims.WarehouseID == nil || *claims.WarehouseID != 3 {
		t.Fatalf("expected warehouse 3, got %v", claims.WarehouseID)
	}
	if string(claims.Role) != "manager" {
		t.Fatalf("expected manager role, got %s", claims.Role)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	role := f.seedRole(t, 1, "owner", true)
	roleID := role.ID
	if _, err := f.service.Create(ctx, CreateInput{
		FullName:    "C",
		PhoneNumber: "+998900000003",
		Password:    "secret123",
		RoleID:      &roleID,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := f.service.Login(ctx, LoginInput{PhoneNumber: "+998900000003", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	// Unknown phone gets the same answer as a wrong password.
	_, err = f.service.Login(ctx, LoginInput{PhoneNumber: "+998909999999", Password: "secret123"})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for unknown phone, got %v", err)
	}
}

func TestLoginWithoutRoleForbidden(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.service.Create(ctx, CreateInput{
		FullName:    "D",
		PhoneNumber: "+998900000004",
		Password:    "secret123",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := f.service.Login(ctx, LoginInput{PhoneNumber: "+998900000004", Password: "secret123"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func (f *fixture) seedRole(t *testing.T, warehouseID int64, name string, isOwner bool) *models.AdminRole {
	t.Helper()
	role := &models.AdminRole{
		WarehouseID: warehouseID,
		Name:        name,
		IsOwner:     isOwner,
		Permissions: []string{"orders:manage"},
	}
	if err := f.db.Create(role).Error; err != nil {
		t.Fatalf("seed role: %v", err)
	}
	return role
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:admins_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.AdminUser{},
		&models.AdminRole{},
		&models.AdminRoleMember{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
