package orders

import (
	"context"
	"errors"
	"time"

	"eFurnitureMarket/business/product"
	"eFurnitureMarket/business/wallet"
	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/logger"
	"eFurnitureMarket/pkg/pagination"

	"github.com/shopspring/decimal"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID uint) (domain.Order, error)
	GetOrdersByUser(ctx context.Context, userID uint, pageIndex, pageSize int) ([]domain.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID uint, statusID uint) error
	AttachTransaction(ctx context.Context, orderID uint, transactionID uint) error
	FindStatusByCode(ctx context.Context, code int) (domain.StatusOrderProcessing, error)
	DeleteOrder(ctx context.Context, orderID uint) error
}

// WalletService contract interface, used when an order is paid from the
// customer's wallet. AddBalance is the compensation path: it refunds a debit
// whose order could not be completed.
type WalletService interface {
	AddBalance(ctx context.Context, req wallet.UpdateWalletRequest) (domain.Transaction, error)
	SubtractBalance(ctx context.Context, req wallet.UpdateWalletRequest) (domain.Transaction, error)
}

type OrdersService struct {
	orderRepo     OrdersRepository
	productsRepo  product.ProductRepository
	walletService WalletService
}

func NewOrdersService(orderRepo OrdersRepository, productsRepo product.ProductRepository, walletService WalletService) *OrdersService {
	return &OrdersService{
		orderRepo:     orderRepo,
		productsRepo:  productsRepo,
		walletService: walletService,
	}
}

type OrderItem struct {
	ProductID uint64 `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID        uint
	Items         []OrderItem
	PayFromWallet bool
}

// CreateOrder prices the requested items, reserves their inventory, records
// the order with the Pending status, and optionally debits the customer's
// wallet through the ledger. The wallet is only touched once the order row
// exists; if the debit or the ledger attachment fails, the order is removed
// and the reserved inventory released, so a failed checkout never leaves
// money taken without an order behind it.
func (s *OrdersService) CreateOrder(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, errors.New("order must contain at least one item")
	}

	total := decimal.Zero
	details := make([]domain.OrderDetail, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, errors.New("item quantity must be positive")
		}

		p, err := s.productsRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return domain.Order{}, err
		}

		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		details = append(details, domain.OrderDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     p.Price,
		})
	}

	pending, err := s.orderRepo.FindStatusByCode(ctx, domain.OrderStatusPending)
	if err != nil {
		logger.Error("Pending order status missing", err)
		return domain.Order{}, err
	}

	reserved, err := s.reserveInventory(ctx, details)
	if err != nil {
		s.releaseInventory(ctx, reserved)
		return domain.Order{}, err
	}

	order := domain.Order{
		DateTime: time.Now(),
		Price:    total,
		StatusID: &pending.ID,
		UserID:   req.UserID,
		Details:  details,
	}

	if err := s.orderRepo.CreateOrder(ctx, &order); err != nil {
		logger.Error("Failed to create order", err)
		s.releaseInventory(ctx, reserved)
		return domain.Order{}, err
	}

	if req.PayFromWallet {
		amount, _ := total.Float64()
		debit := wallet.UpdateWalletRequest{UserID: req.UserID, Amount: amount}

		record, err := s.walletService.SubtractBalance(ctx, debit)
		if err != nil {
			logger.Error("Wallet payment for order failed", err)
			s.abandonOrder(ctx, order.ID, reserved)
			return domain.Order{}, err
		}

		if err := s.orderRepo.AttachTransaction(ctx, order.ID, record.ID); err != nil {
			logger.Error("Failed to attach wallet transaction to order", err)
			if _, refundErr := s.walletService.AddBalance(ctx, debit); refundErr != nil {
				logger.Error("Failed to refund wallet debit for abandoned order", refundErr)
			}
			s.abandonOrder(ctx, order.ID, reserved)
			return domain.Order{}, err
		}
		order.TransactionID = &record.ID
	}

	return order, nil
}

// reserveInventory decrements stock for each line item, stopping at the
// first failure. It returns the details it managed to reserve so the caller
// can release them.
func (s *OrdersService) reserveInventory(ctx context.Context, details []domain.OrderDetail) ([]domain.OrderDetail, error) {
	reserved := make([]domain.OrderDetail, 0, len(details))
	for _, detail := range details {
		if err := s.productsRepo.AdjustInventory(ctx, detail.ProductID, -detail.Quantity); err != nil {
			return reserved, err
		}
		reserved = append(reserved, detail)
	}
	return reserved, nil
}

func (s *OrdersService) releaseInventory(ctx context.Context, reserved []domain.OrderDetail) {
	for _, detail := range reserved {
		if err := s.productsRepo.AdjustInventory(ctx, detail.ProductID, detail.Quantity); err != nil {
			logger.Error("Failed to release reserved inventory", err)
		}
	}
}

func (s *OrdersService) abandonOrder(ctx context.Context, orderID uint, reserved []domain.OrderDetail) {
	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		logger.Error("Failed to remove order after payment failure", err)
	}
	s.releaseInventory(ctx, reserved)
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID uint) (domain.Order, error) {
	return s.orderRepo.GetOrder(ctx, orderID)
}

func (s *OrdersService) GetOrdersByUser(ctx context.Context, userID uint, pageIndex, pageSize int) (pagination.Page[domain.Order], error) {
	pageIndex, pageSize, err := pagination.Normalize(pageIndex, pageSize)
	if err != nil {
		return pagination.Page[domain.Order]{}, err
	}

	orders, total, err := s.orderRepo.GetOrdersByUser(ctx, userID, pageIndex, pageSize)
	if err != nil {
		return pagination.Page[domain.Order]{}, err
	}

	return pagination.New(pageIndex, pageSize, total, orders), nil
}

// UpdateOrderStatus moves an order to the status with the given code.
func (s *OrdersService) UpdateOrderStatus(ctx context.Context, orderID uint, statusCode int) error {
	status, err := s.orderRepo.FindStatusByCode(ctx, statusCode)
	if err != nil {
		return errors.New("unknown order status")
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, status.ID)
}

func (s *OrdersService) DeleteOrder(ctx context.Context, orderID uint) error {
	return s.orderRepo.DeleteOrder(ctx, orderID)
}
