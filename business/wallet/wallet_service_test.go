package wallet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[uint]domain.User
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

type fakeLedgerRepo struct {
	balances map[uint]decimal.Decimal
	records  []domain.Transaction
	failWith error
}

func (f *fakeLedgerRepo) ApplyBalanceChange(ctx context.Context, userID uint, delta decimal.Decimal, build func(balanceAfter decimal.Decimal) domain.Transaction) (domain.Transaction, error) {
	if f.failWith != nil {
		return domain.Transaction{}, f.failWith
	}

	after := f.balances[userID].Add(delta)
	if after.IsNegative() {
		return domain.Transaction{}, domain.ErrInsufficientBalance
	}

	f.balances[userID] = after
	record := build(after)
	record.ID = uint(len(f.records) + 1)
	f.records = append(f.records, record)

	return record, nil
}

func (f *fakeLedgerRepo) FindByUserID(ctx context.Context, userID uint, pageIndex, pageSize int) ([]domain.Transaction, int64, error) {
	var out []domain.Transaction
	for _, record := range f.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}

	total := int64(len(out))
	start := pageIndex * pageSize
	if start >= len(out) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(out) {
		end = len(out)
	}

	return out[start:end], total, nil
}

type fakeCache struct {
	balances    map[uint]decimal.Decimal
	pages       map[string]pagination.Page[domain.Transaction]
	invalidated []uint
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		balances: make(map[uint]decimal.Decimal),
		pages:    make(map[string]pagination.Page[domain.Transaction]),
	}
}

func cacheKey(userID uint, pageIndex, pageSize int) string {
	return fmt.Sprintf("%d:%d:%d", userID, pageIndex, pageSize)
}

func (f *fakeCache) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, bool, error) {
	balance, ok := f.balances[userID]
	return balance, ok, nil
}

func (f *fakeCache) SetBalance(ctx context.Context, userID uint, balance decimal.Decimal) error {
	f.balances[userID] = balance
	return nil
}

func (f *fakeCache) GetLedgerPage(ctx context.Context, userID uint, pageIndex, pageSize int) (pagination.Page[domain.Transaction], bool, error) {
	page, ok := f.pages[cacheKey(userID, pageIndex, pageSize)]
	return page, ok, nil
}

func (f *fakeCache) SetLedgerPage(ctx context.Context, userID uint, pageIndex, pageSize int, page pagination.Page[domain.Transaction]) error {
	f.pages[cacheKey(userID, pageIndex, pageSize)] = page
	return nil
}

func (f *fakeCache) InvalidateUser(ctx context.Context, userID uint) error {
	f.invalidated = append(f.invalidated, userID)
	delete(f.balances, userID)
	f.pages = make(map[string]pagination.Page[domain.Transaction])
	return nil
}

func newTestService(users map[uint]domain.User, balances map[uint]decimal.Decimal) (*walletService, *fakeLedgerRepo, *fakeCache) {
	ledger := &fakeLedgerRepo{balances: balances}
	cache := newFakeCache()
	svc := NewWalletService(&fakeUserRepo{users: users}, ledger, cache, validator.New())
	return svc, ledger, cache
}

func customer(id uint, balance decimal.Decimal) domain.User {
	return domain.User{
		ID:       id,
		UserName: "jdoe",
		FullName: "John Doe",
		Role:     domain.RoleCustomer,
		Wallet:   balance,
	}
}

func TestAddBalance(t *testing.T) {
	start := decimal.NewFromInt(100)
	svc, ledger, cache := newTestService(
		map[uint]domain.User{1: customer(1, start)},
		map[uint]decimal.Decimal{1: start},
	)

	record, err := svc.AddBalance(context.Background(), UpdateWalletRequest{UserID: 1, Amount: 25.5})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionStatusCredit, record.Status)
	assert.True(t, record.Amount.Equal(decimal.NewFromFloat(25.5)))
	assert.True(t, record.BalanceRemain.Equal(decimal.NewFromFloat(125.5)))
	assert.Equal(t, "Admin", record.From)
	assert.Equal(t, "John Doe", record.To)
	assert.Equal(t, "System", record.Type)
	assert.NotEmpty(t, record.TransactionNo)
	assert.Equal(t, "Transfer 25.50 from eFurniturePay to User Wallet for paying Order by Admin", record.Description)

	require.Len(t, ledger.records, 1)
	assert.Equal(t, []uint{1}, cache.invalidated)
}

func TestSubtractBalance(t *testing.T) {
	start := decimal.NewFromInt(100)
	svc, ledger, _ := newTestService(
		map[uint]domain.User{1: customer(1, start)},
		map[uint]decimal.Decimal{1: start},
	)

	record, err := svc.SubtractBalance(context.Background(), UpdateWalletRequest{UserID: 1, Amount: 40})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionStatusDebit, record.Status)
	assert.True(t, record.BalanceRemain.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, "Transfer 40.00 from User wallet to eFurniturePay for paying Order by Admin", record.Description)
	assert.True(t, ledger.balances[1].Equal(decimal.NewFromInt(60)))
}

func TestSubtractBalance_InsufficientFunds(t *testing.T) {
	start := decimal.NewFromInt(10)
	svc, ledger, cache := newTestService(
		map[uint]domain.User{1: customer(1, start)},
		map[uint]decimal.Decimal{1: start},
	)

	_, err := svc.SubtractBalance(context.Background(), UpdateWalletRequest{UserID: 1, Amount: 10.01})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// no ledger row and no wallet movement on a refused debit
	assert.Empty(t, ledger.records)
	assert.True(t, ledger.balances[1].Equal(start))
	assert.Empty(t, cache.invalidated)
}

func TestWalletOperations_CustomerOnly(t *testing.T) {
	staff := domain.User{ID: 2, FullName: "Jane Staff", Role: domain.RoleStaff, Wallet: decimal.NewFromInt(50)}
	svc, ledger, _ := newTestService(
		map[uint]domain.User{2: staff},
		map[uint]decimal.Decimal{2: decimal.NewFromInt(50)},
	)

	_, err := svc.AddBalance(context.Background(), UpdateWalletRequest{UserID: 2, Amount: 5})
	assert.ErrorIs(t, err, domain.ErrWalletCustomerOnly)

	_, err = svc.SubtractBalance(context.Background(), UpdateWalletRequest{UserID: 2, Amount: 5})
	assert.ErrorIs(t, err, domain.ErrWalletCustomerOnly)

	assert.Empty(t, ledger.records)
}

func TestWalletOperations_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(map[uint]domain.User{}, map[uint]decimal.Decimal{})

	_, err := svc.AddBalance(context.Background(), UpdateWalletRequest{UserID: 99, Amount: 5})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, "not found user", err.Error())
}

func TestWalletOperations_Validation(t *testing.T) {
	start := decimal.NewFromInt(100)
	svc, ledger, _ := newTestService(
		map[uint]domain.User{1: customer(1, start)},
		map[uint]decimal.Decimal{1: start},
	)

	cases := []struct {
		name string
		req  UpdateWalletRequest
	}{
		{"zero amount", UpdateWalletRequest{UserID: 1, Amount: 0}},
		{"negative amount", UpdateWalletRequest{UserID: 1, Amount: -3}},
		{"missing user", UpdateWalletRequest{Amount: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddBalance(context.Background(), tc.req)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}

	assert.Empty(t, ledger.records)
}

func TestGetBalance_ReadThrough(t *testing.T) {
	start := decimal.NewFromInt(77)
	svc, _, cache := newTestService(
		map[uint]domain.User{1: customer(1, start)},
		map[uint]decimal.Decimal{1: start},
	)

	balance, err := svc.GetBalance(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, balance.Equal(start))

	// second read is served from the cache
	cached, ok := cache.balances[1]
	require.True(t, ok)
	assert.True(t, cached.Equal(start))
}

func TestGetTransactions_Paging(t *testing.T) {
	start := decimal.NewFromInt(1000)
	svc, _, _ := newTestService(
		map[uint]domain.User{1: customer(1, start)},
		map[uint]decimal.Decimal{1: start},
	)

	for i := 0; i < 5; i++ {
		_, err := svc.AddBalance(context.Background(), UpdateWalletRequest{UserID: 1, Amount: 1})
		require.NoError(t, err)
	}

	page, err := svc.GetTransactions(context.Background(), 1, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, page.PageIndex)
	assert.Equal(t, 2, page.PageSize)
	assert.Equal(t, int64(5), page.TotalItemsCount)
	assert.Len(t, page.Items, 2)
}

func TestGetTransactions_PagesConcatenateToFullLedger(t *testing.T) {
	start := decimal.NewFromInt(1000)
	svc, _, _ := newTestService(
		map[uint]domain.User{1: customer(1, start)},
		map[uint]decimal.Decimal{1: start},
	)

	for i := 1; i <= 7; i++ {
		_, err := svc.AddBalance(context.Background(), UpdateWalletRequest{UserID: 1, Amount: float64(i)})
		require.NoError(t, err)
	}

	full, err := svc.GetTransactions(context.Background(), 1, 0, 100)
	require.NoError(t, err)
	require.Len(t, full.Items, 7)

	// walking every page of size 3 must reproduce the whole ledger, each
	// row exactly once, in the same order as the unpaged read
	var walked []uint
	for index := 0; ; index++ {
		page, err := svc.GetTransactions(context.Background(), 1, index, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(7), page.TotalItemsCount)

		if len(page.Items) == 0 {
			break
		}
		for _, record := range page.Items {
			walked = append(walked, record.ID)
		}
	}

	fullIDs := make([]uint, 0, len(full.Items))
	seen := make(map[uint]int)
	for _, record := range full.Items {
		fullIDs = append(fullIDs, record.ID)
	}
	for _, id := range walked {
		seen[id]++
	}

	assert.Equal(t, fullIDs, walked)
	for id, count := range seen {
		assert.Equalf(t, 1, count, "transaction %d appeared %d times", id, count)
	}
}

func TestGetTransactions_RepeatedQueryAgrees(t *testing.T) {
	start := decimal.NewFromInt(500)
	svc, _, _ := newTestService(
		map[uint]domain.User{1: customer(1, start)},
		map[uint]decimal.Decimal{1: start},
	)

	for i := 0; i < 4; i++ {
		_, err := svc.AddBalance(context.Background(), UpdateWalletRequest{UserID: 1, Amount: 2})
		require.NoError(t, err)
	}

	first, err := svc.GetTransactions(context.Background(), 1, 0, 3)
	require.NoError(t, err)
	second, err := svc.GetTransactions(context.Background(), 1, 0, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetTransactions_InvalidPage(t *testing.T) {
	svc, _, _ := newTestService(map[uint]domain.User{}, map[uint]decimal.Decimal{})

	_, err := svc.GetTransactions(context.Background(), 1, -1, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)

	_, err = svc.GetTransactions(context.Background(), 1, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
}

func TestGetTransactions_EmptyLedger(t *testing.T) {
	start := decimal.NewFromInt(5)
	svc, _, _ := newTestService(
		map[uint]domain.User{1: customer(1, start)},
		map[uint]decimal.Decimal{1: start},
	)

	page, err := svc.GetTransactions(context.Background(), 1, 0, 10)
	require.NoError(t, err)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.TotalItemsCount)
}

func TestApplyChange_LedgerFailure(t *testing.T) {
	start := decimal.NewFromInt(100)
	svc, ledger, cache := newTestService(
		map[uint]domain.User{1: customer(1, start)},
		map[uint]decimal.Decimal{1: start},
	)
	ledger.failWith = errors.New("connection reset")

	_, err := svc.AddBalance(context.Background(), UpdateWalletRequest{UserID: 1, Amount: 5})
	require.Error(t, err)
	assert.Empty(t, cache.invalidated)
}
