package models

import (
	"time"

	"github.com/javohirtm/ombor-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is a customer storefront order.
type Order struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      int64             `gorm:"column:user_id;not null"`
	Status      enums.OrderStatus `gorm:"column:status;not null"`
	Type        enums.OrderType   `gorm:"column:type;not null"`
	TotalAmount decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Items       []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
	CanceledAt  *time.Time        `gorm:"column:canceled_at"`
}

// OrderItem is one product line on a customer order.
type OrderItem struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID     int64           `gorm:"column:order_id;not null"`
	ProductID   int64           `gorm:"column:product_id;not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
