package warehouses

import (
	"context"
	"errors"
	"fmt"

	"github.com/javohirtm/ombor-backend/pkg/db"
	"github.com/javohirtm/ombor-backend/pkg/db/models"
	pkgerrors "github.com/javohirtm/ombor-backend/pkg/errors"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type service struct {
	repo Repository
}

// NewService builds the warehouse service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("warehouses repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input WarehouseInput) (*models.Warehouse, error) {
	if input.Name == "" || input.Address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name and address required")
	}
	if input.OwnerID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner required")
	}

	warehouse := &models.Warehouse{
		Name:             input.Name,
		Address:          input.Address,
		Description:      input.Description,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		OwnerID:          input.OwnerID,
		OwnerPhoneNumber: input.OwnerPhoneNumber,
	}
	if _, err := s.repo.Create(ctx, warehouse); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create warehouse")
	}
	return warehouse, nil
}

func (s *service) Get(ctx context.Context, warehouseID int64) (*models.Warehouse, error) {
	warehouse, err := s.repo.FindByID(ctx, warehouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warehouse")
	}
	return warehouse, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*pagination.Page, error) {
	warehouses, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list warehouses")
	}
	page := pagination.NewPage(warehouses, total, params)
	return &page, nil
}

func (s *service) Update(ctx context.Context, warehouseID int64, input WarehouseInput) (*models.Warehouse, error) {
	updates := map[string]any{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Address != "" {
		updates["address"] = input.Address
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Latitude != 0 {
		updates["latitude"] = input.Latitude
	}
	if input.Longitude != 0 {
		updates["longitude"] = input.Longitude
	}
	if input.OwnerPhoneNumber != nil {
		updates["owner_phone_number"] = *input.OwnerPhoneNumber
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.Update(ctx, warehouseID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update warehouse")
	}
	return s.Get(ctx, warehouseID)
}

func (s *service) Delete(ctx context.Context, warehouseID int64) error {
	if err := s.repo.Delete(ctx, warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete warehouse")
	}
	return nil
}

func (s *service) CreateRole(ctx context.Context, warehouseID int64, input RoleInput) (*models.AdminRole, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role name required")
	}
	if _, err := s.Get(ctx, warehouseID); err != nil {
		return nil, err
	}

	role := &models.AdminRole{
		WarehouseID: warehouseID,
		Name:        input.Name,
		IsOwner:     input.IsOwner,
		Permissions: pq.StringArray(input.Permissions),
	}
	if _, err := s.repo.CreateRole(ctx, role); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create role")
	}
	return role, nil
}

func (s *service) GetRole(ctx context.Context, roleID int64) (*models.AdminRole, error) {
	role, err := s.repo.FindRole(ctx, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "role not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load role")
	}
	return role, nil
}

func (s *service) ListRoles(ctx context.Context, warehouseID int64) ([]models.AdminRole, error) {
	roles, err := s.repo.ListRoles(ctx, warehouseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list roles")
	}
	return roles, nil
}

func (s *service) UpdateRole(ctx context.Context, roleID int64, input RoleInput) (*models.AdminRole, error) {
	updates := map[string]any{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Permissions != nil {
		updates["permissions"] = pq.StringArray(input.Permissions)
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}
	if err := s.repo.UpdateRole(ctx, roleID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "role not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update role")
	}
	return s.GetRole(ctx, roleID)
}

func (s *service) DeleteRole(ctx context.Context, roleID int64) error {
	if err := s.repo.DeleteRole(ctx, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "role not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete role")
	}
	return nil
}

// Grant links an admin to a role. One membership per (admin, role)
// pair; the unique index surfaces repeats as a conflict.
func (s *service) Grant(ctx context.Context, adminID, roleID int64) (*models.AdminRoleMember, error) {
	if _, err := s.GetRole(ctx, roleID); err != nil {
		return nil, err
	}
	member := &models.AdminRoleMember{AdminID: adminID, RoleID: roleID}
	if _, err := s.repo.CreateMembership(ctx, member); err != nil {
		if db.IsUniqueViolation(err, "uq_admin_role") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "admin already holds this role")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grant role")
	}
	return member, nil
}

func (s *service) Revoke(ctx context.Context, adminID, roleID int64) error {
	removed, err := s.repo.DeleteMembership(ctx, adminID, roleID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke role")
	}
	if removed == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
	}
	return nil
}
