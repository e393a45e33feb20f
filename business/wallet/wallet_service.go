package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/logger"
	"eFurnitureMarket/pkg/metrics"
	"eFurnitureMarket/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// LedgerRepository contract interface. ApplyBalanceChange must adjust the
// wallet and append the built ledger row atomically, refusing any change
// that would take the wallet below zero.
type LedgerRepository interface {
	ApplyBalanceChange(ctx context.Context, userID uint, delta decimal.Decimal, build func(balanceAfter decimal.Decimal) domain.Transaction) (domain.Transaction, error)
	FindByUserID(ctx context.Context, userID uint, pageIndex, pageSize int) ([]domain.Transaction, int64, error)
}

// LedgerCache contract interface
type LedgerCache interface {
	GetBalance(ctx context.Context, userID uint) (decimal.Decimal, bool, error)
	SetBalance(ctx context.Context, userID uint, balance decimal.Decimal) error
	GetLedgerPage(ctx context.Context, userID uint, pageIndex, pageSize int) (pagination.Page[domain.Transaction], bool, error)
	SetLedgerPage(ctx context.Context, userID uint, pageIndex, pageSize int, page pagination.Page[domain.Transaction]) error
	InvalidateUser(ctx context.Context, userID uint) error
}

type walletService struct {
	userRepo   UserRepository
	ledgerRepo LedgerRepository
	cache      LedgerCache
	validate   *validator.Validate
}

func NewWalletService(
	userRepo UserRepository,
	ledgerRepo LedgerRepository,
	cache LedgerCache,
	validate *validator.Validate,
) *walletService {
	return &walletService{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		cache:      cache,
		validate:   validate,
	}
}

type UpdateWalletRequest struct {
	UserID uint    `json:"user_id" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

const (
	ledgerActor = "Admin"
	ledgerType  = "System"

	creditDescriptionFmt = "Transfer %s from eFurniturePay to User Wallet for paying Order by Admin"
	debitDescriptionFmt  = "Transfer %s from User wallet to eFurniturePay for paying Order by Admin"
)

// AddBalance credits a customer's wallet and appends the matching ledger
// row. The wallet update and the ledger append commit in one unit of work.
func (s *walletService) AddBalance(ctx context.Context, req UpdateWalletRequest) (domain.Transaction, error) {
	record, err := s.applyChange(ctx, req, false)
	metrics.WalletOperations.WithLabelValues("add", outcomeOf(err)).Inc()
	return record, err
}

// SubtractBalance debits a customer's wallet, rejecting any amount above
// the current balance before touching the store.
func (s *walletService) SubtractBalance(ctx context.Context, req UpdateWalletRequest) (domain.Transaction, error) {
	record, err := s.applyChange(ctx, req, true)
	metrics.WalletOperations.WithLabelValues("subtract", outcomeOf(err)).Inc()
	return record, err
}

func (s *walletService) applyChange(ctx context.Context, req UpdateWalletRequest, isDebit bool) (domain.Transaction, error) {
	if err := s.validate.Struct(&req); err != nil {
		logger.Error("Wallet request failed validation", err)
		return domain.Transaction{}, &domain.ValidationError{Message: validationMessage(err)}
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		logger.Error("Failed to find wallet owner", err)
		return domain.Transaction{}, err
	}

	if user.Role != domain.RoleCustomer {
		logger.Warn("Wallet operation rejected for non-customer", "user_id", user.ID, "role", user.Role)
		return domain.Transaction{}, domain.ErrWalletCustomerOnly
	}

	amount := decimal.NewFromFloat(req.Amount)

	delta := amount
	status := domain.TransactionStatusCredit
	descriptionFmt := creditDescriptionFmt
	if isDebit {
		if user.Wallet.LessThan(amount) {
			return domain.Transaction{}, domain.ErrInsufficientBalance
		}
		delta = amount.Neg()
		status = domain.TransactionStatusDebit
		descriptionFmt = debitDescriptionFmt
	}

	record, err := s.ledgerRepo.ApplyBalanceChange(ctx, user.ID, delta, func(balanceAfter decimal.Decimal) domain.Transaction {
		return domain.Transaction{
			TransactionNo: uuid.NewString(),
			UserID:        user.ID,
			Amount:        amount,
			From:          ledgerActor,
			To:            user.FullName,
			Type:          ledgerType,
			BalanceRemain: balanceAfter,
			Status:        status,
			Description:   fmt.Sprintf(descriptionFmt, amount.StringFixed(2)),
		}
	})
	if err != nil {
		logger.Error("Failed to apply wallet change", err)
		return domain.Transaction{}, err
	}

	if cacheErr := s.cache.InvalidateUser(ctx, user.ID); cacheErr != nil {
		logger.Warn("Failed to invalidate wallet cache", cacheErr)
	}

	return record, nil
}

// GetBalance reads the wallet through the cache.
func (s *walletService) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	if balance, found, err := s.cache.GetBalance(ctx, userID); err == nil && found {
		return balance, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	if cacheErr := s.cache.SetBalance(ctx, userID, user.Wallet); cacheErr != nil {
		logger.Warn("Failed to cache wallet balance", cacheErr)
	}

	return user.Wallet, nil
}

// GetTransactions returns one page of the user's ledger, newest first.
func (s *walletService) GetTransactions(ctx context.Context, userID uint, pageIndex, pageSize int) (pagination.Page[domain.Transaction], error) {
	pageIndex, pageSize, err := pagination.Normalize(pageIndex, pageSize)
	if err != nil {
		return pagination.Page[domain.Transaction]{}, err
	}

	if page, found, cacheErr := s.cache.GetLedgerPage(ctx, userID, pageIndex, pageSize); cacheErr == nil && found {
		return page, nil
	}

	transactions, total, err := s.ledgerRepo.FindByUserID(ctx, userID, pageIndex, pageSize)
	if err != nil {
		logger.Error("Failed to load ledger page", err)
		return pagination.Page[domain.Transaction]{}, err
	}

	page := pagination.New(pageIndex, pageSize, total, transactions)

	if cacheErr := s.cache.SetLedgerPage(ctx, userID, pageIndex, pageSize, page); cacheErr != nil {
		logger.Warn("Failed to cache ledger page", cacheErr)
	}

	return page, nil
}

func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}

	return strings.Join(messages, ", ")
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case domain.IsValidation(err):
		return "validation"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrWalletCustomerOnly), errors.Is(err, domain.ErrInsufficientBalance):
		return "business"
	default:
		return "persistence"
	}
}
