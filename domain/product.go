package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product status codes.
const (
	ProductStatusActive   = 1
	ProductStatusInactive = 2
)

type Product struct {
	ID                uint64          `gorm:"primaryKey;autoIncrement"`
	Name              string          `gorm:"column:name;type:text;not null"`
	Description       string          `gorm:"column:description;type:text"`
	Image             string          `gorm:"column:image;type:text"`
	InventoryQuantity int             `gorm:"column:inventory_quantity;default:0"`
	Status            int             `gorm:"column:status;default:1"`
	Price             decimal.Decimal `gorm:"column:price;type:numeric(18,2);default:0"`
	CategoryID        *uint64         `gorm:"column:category_id"`
	CreatedAt         time.Time       `gorm:"column:created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}

func (Product) TableName() string {
	return "products"
}
