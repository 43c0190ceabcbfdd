package admins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/javohirtm/ombor-backend/pkg/auth"
	"github.com/javohirtm/ombor-backend/pkg/config"
	"github.com/javohirtm/ombor-backend/pkg/db"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/enums"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"github.com/javohirtm/ombor-backend/pkg/security"
	"gorm.io/gorm"
)

const tempPasswordLength = 12

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     Repository
	tx       txRunner
	jwt      config.JWTConfig
	password config.PasswordConfig
}

// NewService builds the admin account service with its dependencies.
func NewService(repo Repository, tx txRunner, jwt config.JWTConfig, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("admins repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if jwt.Secret == "" {
		return nil, fmt.Errorf("jwt secret required")
	}
	return &service{repo: repo, tx: tx, jwt: jwt, password: password}, nil
}

// Create registers an admin and optionally grants a role in the same
// transaction. Without a password, a temporary one is generated and
// returned once; only its hash is stored.
func (s *service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if input.FullName == "" || input.PhoneNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name and phone number required")
	}

	password := input.Password
	var tempPassword *string
	if password == "" {
		generated, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
		}
		password = generated
		tempPassword = &generated
	}

	hash, err := security.HashPassword(password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	admin := &models.AdminUser{
		FullName:       input.FullName,
		PhoneNumber:    input.PhoneNumber,
		PasswordHash:   hash,
		ProfilePicture: input.ProfilePicture,
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.Create(ctx, admin); err != nil {
			if db.IsUniqueViolation(err, "idx_admin_users_phone_number") {
				return pkgerrors.New(pkgerrors.CodeConflict, "phone number already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create admin")
		}
		if input.RoleID != nil {
			member := &models.AdminRoleMember{AdminID: admin.ID, RoleID: *input.RoleID}
			if _, err := repo.CreateMembership(ctx, member); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grant role")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateResult{Admin: admin, TempPassword: tempPassword}, nil
}

// Login verifies the credential and mints an access token carrying the
// admin's coarse role and warehouse scope.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if input.PhoneNumber == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number and password required")
	}

	admin, err := s.repo.FindByPhone(ctx, input.PhoneNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}

	ok, err := security.VerifyPassword(input.Password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	role, warehouseID, err := s.resolveScope(ctx, admin)
	if err != nil {
		return nil, err
	}

	token, err := auth.MintAccessToken(s.jwt, time.Now(), auth.AccessTokenPayload{
		AdminID:     admin.ID,
		WarehouseID: warehouseID,
		Role:        role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &LoginResult{Token: token, Admin: admin}, nil
}

func (s *service) Get(ctx context.Context, adminID int64) (*models.AdminUser, error) {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load admin")
	}
	return admin, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*pagination.Page, error) {
	admins, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list admins")
	}
	page := pagination.NewPage(admins, total, params)
	return &page, nil
}

// resolveScope derives the coarse token role: global admins are
// superusers without warehouse scope, owners map to admin, everyone
// else carries their role name when it matches the enum.
func (s *service) resolveScope(ctx context.Context, admin *models.AdminUser) (enums.AdminRole, *int64, error) {
	if admin.IsGlobalAdmin {
		return enums.AdminRoleSuperuser, nil, nil
	}

	role, err := s.repo.FindPrimaryRole(ctx, admin.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin has no warehouse role")
		}
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load role")
	}

	coarse := enums.AdminRoleSeller
	if role.IsOwner {
		coarse = enums.AdminRoleAdmin
	} else if parsed, err := enums.ParseAdminRole(role.Name); err == nil {
		coarse = parsed
	}
	warehouseID := role.WarehouseID
	return coarse, &warehouseID, nil
}
