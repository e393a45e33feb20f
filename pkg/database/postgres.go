package database

import (
	"fmt"

	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Transaction{},
		&domain.Appointment{},
		&domain.AppointmentDetail{},
		&domain.Category{},
		&domain.Product{},
		&domain.StatusOrderProcessing{},
		&domain.Order{},
		&domain.OrderDetail{},
	)
}

// SeedOrderStatuses inserts the fixed order-processing statuses. Idempotent
// per status name, so it is safe to run on every startup.
func SeedOrderStatuses(db *gorm.DB) error {
	statuses := map[string]int{
		"Pending":    domain.OrderStatusPending,
		"Delivering": domain.OrderStatusDelivering,
		"Cancelled":  domain.OrderStatusCancelled,
		"Delivered":  domain.OrderStatusDelivered,
		"Rejected":   domain.OrderStatusRejected,
	}

	for name, code := range statuses {
		var count int64
		if err := db.Model(&domain.StatusOrderProcessing{}).
			Where("name = ?", name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		status := domain.StatusOrderProcessing{Name: name, StatusCode: code}
		if err := db.Create(&status).Error; err != nil {
			return err
		}
	}

	return nil
}
