package postgres

import (
	"context"

	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/pagination"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionRepository owns the append-only ledger and the wallet column it
// must stay in agreement with.
type TransactionRepository struct {
	DB *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{
		DB: db,
	}
}

// ApplyBalanceChange adjusts the user's wallet by delta and appends the
// ledger row produced by build, both inside one database transaction. The
// conditional update guards `wallet >= 0` at the row level, so two
// concurrent debits cannot take the balance negative regardless of what the
// service read beforehand. Either both writes commit or neither does.
func (r *TransactionRepository) ApplyBalanceChange(
	ctx context.Context,
	userID uint,
	delta decimal.Decimal,
	build func(balanceAfter decimal.Decimal) domain.Transaction,
) (domain.Transaction, error) {
	var record domain.Transaction

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := domain.User{ID: userID}

		result := tx.Model(&user).
			Clauses(clause.Returning{Columns: []clause.Column{{Name: "wallet"}}}).
			Where("wallet + ? >= 0", delta).
			Update("wallet", gorm.Expr("wallet + ?", delta))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrUserNotFound
			}
			return domain.ErrInsufficientBalance
		}

		record = build(user.Wallet)
		return tx.Create(&record).Error
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	return record, nil
}

// FindByUserID returns one page of the user's ledger, newest first, plus the
// total row count before paging.
func (r *TransactionRepository) FindByUserID(ctx context.Context, userID uint, pageIndex, pageSize int) ([]domain.Transaction, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []domain.Transaction
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scopes(pagination.Scope(pageIndex, pageSize)).
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}
