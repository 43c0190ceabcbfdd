package models

import (
	"time"

	"github.com/javohirtm/ombor-backend/pkg/enums"
)

// Notification is a message shown to a customer, optionally tied to an
// order.
type Notification struct {
	ID        int64                    `gorm:"column:id;primaryKey;autoIncrement"`
	Title     string                   `gorm:"column:title;not null"`
	Body      *string                  `gorm:"column:body"`
	Image     *string                  `gorm:"column:image"`
	Type      enums.NotificationStatus `gorm:"column:type;not null;default:info"`
	IsRead    bool                     `gorm:"column:is_read;not null;default:false"`
	UserID    *int64                   `gorm:"column:user_id"`
	OrderID   *int64                   `gorm:"column:order_id"`
	CreatedAt time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
