package domain

import (
	"time"
)

type Category struct {
	CategoryID  uint64    `gorm:"primaryKey;column:category_id;autoIncrement"`
	Name        string    `gorm:"column:name;type:text;not null"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Category) TableName() string {
	return "categories"
}
