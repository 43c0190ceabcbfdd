package models

import "time"

// Wishlist links a customer to a saved product. One row per
// (user, product) pair.
type Wishlist struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uq_user_product"`
	ProductID int64     `gorm:"column:product_id;not null;uniqueIndex:uq_user_product"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
