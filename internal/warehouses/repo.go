package warehouses

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a warehouses repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	if err := r.db.WithContext(ctx).Create(warehouse).Error; err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (r *repository) FindByID(ctx context.Context, warehouseID int64) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("id = ?", warehouseID).
		First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Warehouse, int64, error) {
	var warehouses []models.Warehouse
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Warehouse{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&warehouses).Error
	if err != nil {
		return nil, 0, err
	}
	return warehouses, total, nil
}

func (r *repository) Update(ctx context.Context, warehouseID int64, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.Warehouse{}).
		Where("id = ?", warehouseID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, warehouseID int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", warehouseID).Delete(&models.Warehouse{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateRole(ctx context.Context, role *models.AdminRole) (*models.AdminRole, error) {
	if err := r.db.WithContext(ctx).Create(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

func (r *repository) FindRole(ctx context.Context, roleID int64) (*models.AdminRole, error) {
	var role models.AdminRole
	err := r.db.WithContext(ctx).Where("id = ?", roleID).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) ListRoles(ctx context.Context, warehouseID int64) ([]models.AdminRole, error) {
	var roles []models.AdminRole
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("id ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *repository) UpdateRole(ctx context.Context, roleID int64, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.AdminRole{}).
		Where("id = ?", roleID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteRole(ctx context.Context, roleID int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", roleID).Delete(&models.AdminRole{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreateMembership(ctx context.Context, member *models.AdminRoleMember) (*models.AdminRoleMember, error) {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (r *repository) DeleteMembership(ctx context.Context, adminID, roleID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("admin_id = ? AND role_id = ?", adminID, roleID).
		Delete(&models.AdminRoleMember{})
	return result.RowsAffected, result.Error
}

func (r *repository) FindMembershipByAdmin(ctx context.Context, adminID int64) (*models.AdminRoleMember, error) {
	var member models.AdminRoleMember
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("id ASC").
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}
