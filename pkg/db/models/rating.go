package models

import (
	"time"

	"github.com/lib/pq"
)

// Rating is a 1..5 customer review with optional picture paths.
type Rating struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Rating    int            `gorm:"column:rating;not null"`
	Comment   string         `gorm:"column:comment;not null;default:''"`
	UserID    int64          `gorm:"column:user_id;not null"`
	ProductID int64          `gorm:"column:product_id;not null"`
	Pictures  pq.StringArray `gorm:"column:pictures;type:text[]"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
