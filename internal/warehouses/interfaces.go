package warehouses

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

// WarehouseInput carries create/update fields for a warehouse.
type WarehouseInput struct {
	Name             string
	Address          string
	Description      *string
	Latitude         float64
	Longitude        float64
	OwnerID          int64
	OwnerPhoneNumber *string
}

// RoleInput carries create/update fields for a warehouse role.
type RoleInput struct {
	Name        string
	IsOwner     bool
	Permissions []string
}

// Repository defines persistence operations for warehouses and roles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error)
	FindByID(ctx context.Context, warehouseID int64) (*models.Warehouse, error)
	List(ctx context.Context, params pagination.Params) ([]models.Warehouse, int64, error)
	Update(ctx context.Context, warehouseID int64, updates map[string]any) error
	Delete(ctx context.Context, warehouseID int64) error

	CreateRole(ctx context.Context, role *models.AdminRole) (*models.AdminRole, error)
	FindRole(ctx context.Context, roleID int64) (*models.AdminRole, error)
	ListRoles(ctx context.Context, warehouseID int64) ([]models.AdminRole, error)
	UpdateRole(ctx context.Context, roleID int64, updates map[string]any) error
	DeleteRole(ctx context.Context, roleID int64) error

	CreateMembership(ctx context.Context, member *models.AdminRoleMember) (*models.AdminRoleMember, error)
	DeleteMembership(ctx context.Context, adminID, roleID int64) (int64, error)
	FindMembershipByAdmin(ctx context.Context, adminID int64) (*models.AdminRoleMember, error)
}

// Service exposes warehouse, role and membership operations.
type Service interface {
	Create(ctx context.Context, input WarehouseInput) (*models.Warehouse, error)
	Get(ctx context.Context, warehouseID int64) (*models.Warehouse, error)
	List(ctx context.Context, params pagination.Params) (*pagination.Page, error)
	Update(ctx context.Context, warehouseID int64, input WarehouseInput) (*models.Warehouse, error)
	Delete(ctx context.Context, warehouseID int64) error

	CreateRole(ctx context.Context, warehouseID int64, input RoleInput) (*models.AdminRole, error)
	GetRole(ctx context.Context, roleID int64) (*models.AdminRole, error)
	ListRoles(ctx context.Context, warehouseID int64) ([]models.AdminRole, error)
	UpdateRole(ctx context.Context, roleID int64, input RoleInput) (*models.AdminRole, error)
	DeleteRole(ctx context.Context, roleID int64) error

	Grant(ctx context.Context, adminID, roleID int64) (*models.AdminRoleMember, error)
	Revoke(ctx context.Context, adminID, roleID int64) error
}
