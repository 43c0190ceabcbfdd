package models

import (
	"time"
)

// Warehouse represents one physical store/warehouse tenant.
type Warehouse struct {
	ID               int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name             string     `gorm:"column:name;not null"`
	Address          string     `gorm:"column:address;not null"`
	Description      *string    `gorm:"column:description"`
	Latitude         float64    `gorm:"column:latitude;not null"`
	Longitude        float64    `gorm:"column:longitude;not null"`
	OwnerID          int64      `gorm:"column:owner_id;not null"`
	OwnerPhoneNumber *string    `gorm:"column:owner_phone_number"`
	Roles            []AdminRole `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
