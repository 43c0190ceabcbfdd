package models

import "time"

// User is a storefront customer.
type User struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	FullName       string    `gorm:"column:full_name;not null"`
	PhoneNumber    string    `gorm:"column:phone_number;not null;uniqueIndex"`
	PasswordHash   string    `gorm:"column:password_hash;not null"`
	ProfilePicture *string   `gorm:"column:profile_picture"`
	IsActive       bool      `gorm:"column:is_active;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
