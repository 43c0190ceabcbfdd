package models

import (
	"time"

	"github.com/lib/pq"
)

// AdminRole is a named permission bundle scoped to one warehouse.
type AdminRole struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement"`
	WarehouseID int64          `gorm:"column:warehouse_id;not null"`
	Name        string         `gorm:"column:name;not null"`
	IsOwner     bool           `gorm:"column:is_owner;not null;default:false"`
	Permissions pq.StringArray `gorm:"column:permissions;type:text[];not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// AdminRoleMember links an admin user to a warehouse role.
type AdminRoleMember struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	AdminID   int64     `gorm:"column:admin_id;not null;uniqueIndex:uq_admin_role"`
	RoleID    int64     `gorm:"column:role_id;not null;uniqueIndex:uq_admin_role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
