package postgres

import (
	"context"
	"errors"

	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/pagination"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *OrdersRepository) GetOrder(ctx context.Context, orderID uint) (domain.Order, error) {
	var order domain.Order

	err := r.DB.WithContext(ctx).
		Preload("Status").
		Preload("Details.Product").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, err
	}

	return order, nil
}

func (r *OrdersRepository) GetOrdersByUser(ctx context.Context, userID uint, pageIndex, pageSize int) ([]domain.Order, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Preload("Status").
		Preload("Details.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scopes(pagination.Scope(pageIndex, pageSize)).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, orderID uint, statusID uint) error {
	result := r.DB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", orderID).
		Update("status_id", statusID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// AttachTransaction links the ledger row that paid for the order.
func (r *OrdersRepository) AttachTransaction(ctx context.Context, orderID uint, transactionID uint) error {
	result := r.DB.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", orderID).
		Update("transaction_id", transactionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func (r *OrdersRepository) FindStatusByCode(ctx context.Context, code int) (domain.StatusOrderProcessing, error) {
	var status domain.StatusOrderProcessing

	err := r.DB.WithContext(ctx).Where("status_code = ?", code).First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.StatusOrderProcessing{}, domain.ErrOrderNotFound
		}
		return domain.StatusOrderProcessing{}, err
	}

	return status, nil
}

func (r *OrdersRepository) DeleteOrder(ctx context.Context, orderID uint) error {
	result := r.DB.WithContext(ctx).Delete(&domain.Order{}, orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}
