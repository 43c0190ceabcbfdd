package admins

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

// CreateInput registers a back-office admin. When Password is empty a
// temporary one is generated and returned alongside the user.
type CreateInput struct {
	FullName       string
	PhoneNumber    string
	Password       string
	ProfilePicture *string
	RoleID         *int64
}

// LoginInput is one credential presentation.
type LoginInput struct {
	PhoneNumber string
	Password    string
}

// LoginResult carries the minted token with its subject.
type LoginResult struct {
	Token string            `json:"token"`
	Admin *models.AdminUser `json:"admin"`
}

// CreateResult returns the stored admin and, when generated, the
// one-time temporary password in clear text.
type CreateResult struct {
	Admin        *models.AdminUser `json:"admin"`
	TempPassword *string           `json:"temp_password,omitempty"`
}

// Repository defines persistence operations for admin users.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error)
	FindByID(ctx context.Context, adminID int64) (*models.AdminUser, error)
	FindByPhone(ctx context.Context, phoneNumber string) (*models.AdminUser, error)
	List(ctx context.Context, params pagination.Params) ([]models.AdminUser, int64, error)
	CreateMembership(ctx context.Context, member *models.AdminRoleMember) (*models.AdminRoleMember, error)
	FindPrimaryRole(ctx context.Context, adminID int64) (*models.AdminRole, error)
}

// Service exposes admin account and login operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Get(ctx context.Context, adminID int64) (*models.AdminUser, error)
	List(ctx context.Context, params pagination.Params) (*pagination.Page, error)
}
