package models

import (
	"time"

	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
)

// Color is a shared variant attribute with a multilingual label.
type Color struct {
	ID        int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name      dbtypes.Translated `gorm:"column:name;type:jsonb;not null"`
	HexCode   string             `gorm:"column:hex_code;not null"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
