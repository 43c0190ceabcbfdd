package admins

import (
	"context"

	"github.com/javohirtm/ombor-backend/pkg/db/models"
	"github.com/javohirtm/ombor-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an admin user repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error) {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *repository) FindByID(ctx context.Context, adminID int64) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).Where("id = ?", adminID).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repository) FindByPhone(ctx context.Context, phoneNumber string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).Where("phone_number = ?", phoneNumber).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.AdminUser, int64, error) {
	var admins []models.AdminUser
	var total int64

	base := r.db.WithContext(ctx).Model(&models.AdminUser{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(pagination.Normalize(params).Limit).
		Find(&admins).Error
	if err != nil {
		return nil, 0, err
	}
	return admins, total, nil
}

func (r *repository) CreateMembership(ctx context.Context, member *models.AdminRoleMember) (*models.AdminRoleMember, error) {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (r *repository) FindPrimaryRole(ctx context.Context, adminID int64) (*models.AdminRole, error) {
	var role models.AdminRole
	err := r.db.WithContext(ctx).
		Joins("JOIN admin_role_members arm ON arm.role_id = admin_roles.id").
		Where("arm.admin_id = ?", adminID).
		Order("arm.id ASC").
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}
