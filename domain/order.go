package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order processing status codes, seeded into status_order_processings at
// startup.
const (
	OrderStatusPending    = 1
	OrderStatusDelivering = 2
	OrderStatusCancelled  = 3
	OrderStatusDelivered  = 4
	OrderStatusRejected   = 5
)

type Order struct {
	ID            uint            `gorm:"primaryKey"`
	DateTime      time.Time       `gorm:"column:date_time;not null"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(18,2);not null"`
	StatusID      *uint           `gorm:"column:status_id"`
	TransactionID *uint           `gorm:"column:transaction_id"`
	UserID        uint            `gorm:"column:user_id;index;not null"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	Status      *StatusOrderProcessing `gorm:"foreignKey:StatusID"`
	Transaction *Transaction           `gorm:"foreignKey:TransactionID"`
	Details     []OrderDetail          `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderDetail struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"column:order_id;index;not null"`
	ProductID uint64          `gorm:"column:product_id;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(18,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (OrderDetail) TableName() string {
	return "order_details"
}

type StatusOrderProcessing struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"column:name;unique;not null"`
	StatusCode int    `gorm:"column:status_code;not null"`
}

func (StatusOrderProcessing) TableName() string {
	return "status_order_processings"
}
