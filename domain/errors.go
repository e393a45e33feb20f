package domain

import "errors"

// Sentinel errors shared across services. Handlers map these onto response
// codes so API callers can branch on the failure kind instead of sniffing
// message text.
var (
	ErrUserNotFound          = errors.New("not found user")
	ErrWalletCustomerOnly    = errors.New("wallet operations are allowed for customers only")
	ErrInsufficientBalance   = errors.New("insufficient balance in the account")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientInventory = errors.New("not enough inventory for the product")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrInvalidPage           = errors.New("page index and page size must be positive")
)

// ValidationError carries the joined messages of a failed structural
// validation. It is a distinct type so handlers can classify it without
// string inspection.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
