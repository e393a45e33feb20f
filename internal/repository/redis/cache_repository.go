package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/pagination"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	balanceTTL = 60 * time.Second
	ledgerTTL  = 60 * time.Second

	// ledger pages proactively invalidated on a wallet mutation; later pages
	// simply age out through the TTL
	invalidatedLedgerPages = 5
)

// CacheRepository is a read-through cache for wallet balances and ledger
// pages. Entries are short-lived; a wallet mutation invalidates the balance
// and the first ledger pages for that user.
type CacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(client *redis.Client) *CacheRepository {
	return &CacheRepository{
		client: client,
	}
}

func balanceKey(userID uint) string {
	return fmt.Sprintf("wallet:balance:%d", userID)
}

func ledgerPageKey(userID uint, pageIndex, pageSize int) string {
	return fmt.Sprintf("wallet:ledger:%d:page:%d:size:%d", userID, pageIndex, pageSize)
}

func (r *CacheRepository) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, bool, error) {
	val, err := r.client.Get(ctx, balanceKey(userID)).Result()
	if err == redis.Nil {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	balance, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("corrupt cached balance: %w", err)
	}

	return balance, true, nil
}

func (r *CacheRepository) SetBalance(ctx context.Context, userID uint, balance decimal.Decimal) error {
	return r.client.Set(ctx, balanceKey(userID), balance.String(), balanceTTL).Err()
}

func (r *CacheRepository) GetLedgerPage(ctx context.Context, userID uint, pageIndex, pageSize int) (pagination.Page[domain.Transaction], bool, error) {
	var page pagination.Page[domain.Transaction]

	val, err := r.client.Get(ctx, ledgerPageKey(userID, pageIndex, pageSize)).Result()
	if err == redis.Nil {
		return page, false, nil
	}
	if err != nil {
		return page, false, err
	}

	if err := json.Unmarshal([]byte(val), &page); err != nil {
		return page, false, fmt.Errorf("corrupt cached ledger page: %w", err)
	}

	return page, true, nil
}

func (r *CacheRepository) SetLedgerPage(ctx context.Context, userID uint, pageIndex, pageSize int, page pagination.Page[domain.Transaction]) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, ledgerPageKey(userID, pageIndex, pageSize), payload, ledgerTTL).Err()
}

// InvalidateUser drops the cached balance and the leading ledger pages after
// a wallet mutation.
func (r *CacheRepository) InvalidateUser(ctx context.Context, userID uint) error {
	keys := []string{balanceKey(userID)}
	for i := 0; i < invalidatedLedgerPages; i++ {
		keys = append(keys, ledgerPageKey(userID, i, pagination.DefaultPageSize))
	}

	return r.client.Del(ctx, keys...).Err()
}
