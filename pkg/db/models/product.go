package models

import (
	"time"

	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
)

// Product is the sellable catalog entry. Purchasable units live on its
// variants.
type Product struct {
	ID                   int64              `gorm:"column:id;primaryKey;autoIncrement"`
	Name                 dbtypes.Translated `gorm:"column:name;type:jsonb;not null"`
	Description          dbtypes.Translated `gorm:"column:description;type:jsonb"`
	ProductInformationID int64              `gorm:"column:product_information_id;not null"`
	ProductInformation   *ProductInformation `gorm:"foreignKey:ProductInformationID"`
	WarehouseID          int64              `gorm:"column:warehouse_id;not null"`
	SubcategoryID        int64              `gorm:"column:subcategory_id;not null"`
	Variants             []ProductVariant   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductInformation holds shared descriptive facts for a product line.
type ProductInformation struct {
	ID          int64              `gorm:"column:id;primaryKey;autoIncrement"`
	ProductType string             `gorm:"column:product_type;not null"`
	Brand       *string            `gorm:"column:brand"`
	ModelName   *string            `gorm:"column:model_name"`
	Description dbtypes.Translated `gorm:"column:description;type:jsonb"`
	Attributes  dbtypes.Attributes `gorm:"column:attributes;type:jsonb"`
	WarehouseID int64              `gorm:"column:warehouse_id;not null"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductInformation) TableName() string {
	return "product_information"
}
