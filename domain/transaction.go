package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction status codes: 0 = debit, 1 = credit.
const (
	TransactionStatusDebit  = 0
	TransactionStatusCredit = 1
)

// Transaction is an append-only ledger row. Rows are created once and never
// updated or deleted; BalanceRemain snapshots the wallet right after the
// change so the ledger and the wallet can be reconciled.
type Transaction struct {
	ID            uint            `gorm:"primaryKey"`
	TransactionNo string          `gorm:"column:transaction_no;type:varchar(64);uniqueIndex;not null"`
	UserID        uint            `gorm:"column:user_id;index;not null"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(18,2);not null"`
	From          string          `gorm:"column:from_party;not null"`
	To            string          `gorm:"column:to_party;not null"`
	Type          string          `gorm:"column:type;not null"`
	BalanceRemain decimal.Decimal `gorm:"column:balance_remain;type:numeric(18,2);not null"`
	Status        int             `gorm:"column:status;not null"`
	Description   string          `gorm:"column:description"`
	CreatedAt     time.Time       `gorm:"index"`
}

func (Transaction) TableName() string {
	return "transactions"
}
