package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleCustomer = "Customer"
	RoleStaff    = "Staff"
	RoleAdmin    = "Admin"
)

type User struct {
	ID          uint            `gorm:"primaryKey"`
	UserName    string          `gorm:"column:user_name;unique;not null"`
	FullName    string          `gorm:"column:full_name;not null"`
	Email       string          `gorm:"column:email;unique;not null"`
	PhoneNumber string          `gorm:"column:phone_number"`
	IsVerified  bool            `gorm:"column:is_verified;default:false"`
	Password    string          `gorm:"column:password;not null"`
	Role        string          `gorm:"column:role;default:Customer"`
	Wallet      decimal.Decimal `gorm:"column:wallet;type:numeric(18,2);default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
