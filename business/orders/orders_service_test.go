package orders

import (
	"context"
	"errors"
	"testing"

	"eFurnitureMarket/business/wallet"
	"eFurnitureMarket/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrdersRepo struct {
	orders    []domain.Order
	statuses  map[int]domain.StatusOrderProcessing
	attached  map[uint]uint
	createErr error
	attachErr error
}

func (f *fakeOrdersRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = uint(len(f.orders) + 1)
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrdersRepo) GetOrder(ctx context.Context, orderID uint) (domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

func (f *fakeOrdersRepo) GetOrdersByUser(ctx context.Context, userID uint, pageIndex, pageSize int) ([]domain.Order, int64, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrdersRepo) UpdateStatus(ctx context.Context, orderID uint, statusID uint) error {
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders[i].StatusID = &statusID
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

func (f *fakeOrdersRepo) AttachTransaction(ctx context.Context, orderID uint, transactionID uint) error {
	if f.attachErr != nil {
		return f.attachErr
	}
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders[i].TransactionID = &transactionID
			if f.attached == nil {
				f.attached = make(map[uint]uint)
			}
			f.attached[orderID] = transactionID
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

func (f *fakeOrdersRepo) FindStatusByCode(ctx context.Context, code int) (domain.StatusOrderProcessing, error) {
	status, ok := f.statuses[code]
	if !ok {
		return domain.StatusOrderProcessing{}, domain.ErrOrderNotFound
	}
	return status, nil
}

func (f *fakeOrdersRepo) DeleteOrder(ctx context.Context, orderID uint) error {
	for i := range f.orders {
		if f.orders[i].ID == orderID {
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return nil
		}
	}
	return domain.ErrOrderNotFound
}

type fakeProductRepo struct {
	products    map[uint64]domain.Product
	adjustments map[uint64]int
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error { return nil }

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) { return nil, nil }

func (f *fakeProductRepo) FindByCategory(ctx context.Context, categoryID uint64) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error { return nil }

func (f *fakeProductRepo) AdjustInventory(ctx context.Context, id uint64, delta int) error {
	p, ok := f.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	if p.InventoryQuantity+delta < 0 {
		return domain.ErrInsufficientInventory
	}
	p.InventoryQuantity += delta
	f.products[id] = p
	if f.adjustments == nil {
		f.adjustments = make(map[uint64]int)
	}
	f.adjustments[id] += delta
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uint64) error { return nil }

type fakeWalletService struct {
	debits  []wallet.UpdateWalletRequest
	refunds []wallet.UpdateWalletRequest
	err     error
}

func (f *fakeWalletService) SubtractBalance(ctx context.Context, req wallet.UpdateWalletRequest) (domain.Transaction, error) {
	if f.err != nil {
		return domain.Transaction{}, f.err
	}
	f.debits = append(f.debits, req)
	return domain.Transaction{ID: 77, UserID: req.UserID}, nil
}

func (f *fakeWalletService) AddBalance(ctx context.Context, req wallet.UpdateWalletRequest) (domain.Transaction, error) {
	f.refunds = append(f.refunds, req)
	return domain.Transaction{ID: 78, UserID: req.UserID}, nil
}

func newOrdersFixture() (*OrdersService, *fakeOrdersRepo, *fakeProductRepo, *fakeWalletService) {
	ordersRepo := &fakeOrdersRepo{
		statuses: map[int]domain.StatusOrderProcessing{
			domain.OrderStatusPending:    {ID: 1, Name: "Pending", StatusCode: domain.OrderStatusPending},
			domain.OrderStatusDelivering: {ID: 2, Name: "Delivering", StatusCode: domain.OrderStatusDelivering},
		},
	}
	productRepo := &fakeProductRepo{
		products: map[uint64]domain.Product{
			100: {ID: 100, Name: "Oak Table", Price: decimal.NewFromInt(250), InventoryQuantity: 10},
			200: {ID: 200, Name: "Chair", Price: decimal.NewFromFloat(49.99), InventoryQuantity: 4},
		},
	}
	walletSvc := &fakeWalletService{}
	svc := NewOrdersService(ordersRepo, productRepo, walletSvc)
	return svc, ordersRepo, productRepo, walletSvc
}

func TestCreateOrder_PricesLineItems(t *testing.T) {
	svc, ordersRepo, productRepo, _ := newOrdersFixture()

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		UserID: 1,
		Items: []OrderItem{
			{ProductID: 100, Quantity: 2},
			{ProductID: 200, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, order.Price.Equal(decimal.NewFromFloat(549.99)))
	require.Len(t, order.Details, 2)
	assert.True(t, order.Details[0].Price.Equal(decimal.NewFromInt(250)))
	require.NotNil(t, order.StatusID)
	assert.Equal(t, uint(1), *order.StatusID)
	assert.Nil(t, order.TransactionID)

	require.Len(t, ordersRepo.orders, 1)
	assert.Equal(t, -2, productRepo.adjustments[100])
	assert.Equal(t, -1, productRepo.adjustments[200])
}

func TestCreateOrder_PayFromWallet(t *testing.T) {
	svc, ordersRepo, _, walletSvc := newOrdersFixture()

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		UserID:        1,
		Items:         []OrderItem{{ProductID: 100, Quantity: 1}},
		PayFromWallet: true,
	})
	require.NoError(t, err)

	require.NotNil(t, order.TransactionID)
	assert.Equal(t, uint(77), *order.TransactionID)
	assert.Equal(t, uint(77), ordersRepo.attached[order.ID])
	require.Len(t, walletSvc.debits, 1)
	assert.Equal(t, uint(1), walletSvc.debits[0].UserID)
	assert.InDelta(t, 250.0, walletSvc.debits[0].Amount, 0.001)
}

func TestCreateOrder_PersistFailureLeavesWalletUntouched(t *testing.T) {
	svc, ordersRepo, productRepo, walletSvc := newOrdersFixture()
	ordersRepo.createErr = errors.New("insert failed")

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		UserID:        1,
		Items:         []OrderItem{{ProductID: 100, Quantity: 2}},
		PayFromWallet: true,
	})
	require.Error(t, err)

	assert.Empty(t, walletSvc.debits)
	assert.Empty(t, ordersRepo.orders)
	assert.Zero(t, productRepo.adjustments[100])
	assert.Equal(t, 10, productRepo.products[100].InventoryQuantity)
}

func TestCreateOrder_WalletDebitFailureRemovesOrder(t *testing.T) {
	svc, ordersRepo, productRepo, _ := newOrdersFixture()
	walletSvc := &fakeWalletService{err: domain.ErrInsufficientBalance}
	svc = NewOrdersService(ordersRepo, productRepo, walletSvc)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		UserID:        1,
		Items:         []OrderItem{{ProductID: 100, Quantity: 1}},
		PayFromWallet: true,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	assert.Empty(t, ordersRepo.orders)
	assert.Zero(t, productRepo.adjustments[100])
	assert.Equal(t, 10, productRepo.products[100].InventoryQuantity)
}

func TestCreateOrder_AttachFailureRefundsDebit(t *testing.T) {
	svc, ordersRepo, productRepo, walletSvc := newOrdersFixture()
	ordersRepo.attachErr = errors.New("update failed")

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		UserID:        1,
		Items:         []OrderItem{{ProductID: 100, Quantity: 1}},
		PayFromWallet: true,
	})
	require.Error(t, err)

	require.Len(t, walletSvc.debits, 1)
	require.Len(t, walletSvc.refunds, 1)
	assert.InDelta(t, walletSvc.debits[0].Amount, walletSvc.refunds[0].Amount, 0.001)
	assert.Empty(t, ordersRepo.orders)
	assert.Equal(t, 10, productRepo.products[100].InventoryQuantity)
}

func TestCreateOrder_InsufficientInventory(t *testing.T) {
	svc, ordersRepo, productRepo, walletSvc := newOrdersFixture()

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		UserID:        1,
		Items:         []OrderItem{{ProductID: 200, Quantity: 5}},
		PayFromWallet: true,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientInventory)

	assert.Empty(t, ordersRepo.orders)
	assert.Empty(t, walletSvc.debits)
	assert.Equal(t, 4, productRepo.products[200].InventoryQuantity)
}

func TestCreateOrder_RejectsBadInput(t *testing.T) {
	svc, _, _, _ := newOrdersFixture()

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{UserID: 1})
	assert.Error(t, err)

	_, err = svc.CreateOrder(context.Background(), CreateOrderRequest{
		UserID: 1,
		Items:  []OrderItem{{ProductID: 100, Quantity: 0}},
	})
	assert.Error(t, err)

	_, err = svc.CreateOrder(context.Background(), CreateOrderRequest{
		UserID: 1,
		Items:  []OrderItem{{ProductID: 999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateOrder_MultiItemReservationRollsBack(t *testing.T) {
	svc, ordersRepo, productRepo, _ := newOrdersFixture()

	// second line oversells, so the first line's reservation must be undone
	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		UserID: 1,
		Items: []OrderItem{
			{ProductID: 100, Quantity: 3},
			{ProductID: 200, Quantity: 5},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientInventory)

	assert.Empty(t, ordersRepo.orders)
	assert.Equal(t, 10, productRepo.products[100].InventoryQuantity)
	assert.Equal(t, 4, productRepo.products[200].InventoryQuantity)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, ordersRepo, _, _ := newOrdersFixture()

	order, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		UserID: 1,
		Items:  []OrderItem{{ProductID: 100, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateOrderStatus(context.Background(), order.ID, domain.OrderStatusDelivering))
	stored, err := ordersRepo.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), *stored.StatusID)

	err = svc.UpdateOrderStatus(context.Background(), order.ID, 99)
	assert.EqualError(t, err, "unknown order status")
}

func TestGetOrdersByUser_Paging(t *testing.T) {
	svc, _, _, _ := newOrdersFixture()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
			UserID: 1,
			Items:  []OrderItem{{ProductID: 100, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	page, err := svc.GetOrdersByUser(context.Background(), 1, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalItemsCount)

	_, err = svc.GetOrdersByUser(context.Background(), 1, -1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
}
