package response

import (
	"errors"
	"net/http"

	"eFurnitureMarket/domain"
)

// Code is the machine-readable failure kind carried next to the
// human-readable message, so API callers branch on Code instead of
// inspecting message text.
type Code string

const (
	CodeOK                  Code = "OK"
	CodeValidation          Code = "VALIDATION_ERROR"
	CodeNotFound            Code = "NOT_FOUND"
	CodeBusinessRule        Code = "BUSINESS_RULE"
	CodeInsufficientBalance Code = "INSUFFICIENT_BALANCE"
	CodePersistence         Code = "PERSISTENCE_ERROR"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeForbidden           Code = "FORBIDDEN"
	CodeBadRequest          Code = "BAD_REQUEST"
	CodeInternal            Code = "INTERNAL_ERROR"
)

// Response is the uniform envelope every service call answers with.
type Response struct {
	IsSuccess bool   `json:"is_success"`
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

func Success(message string, data any) Response {
	return Response{
		IsSuccess: true,
		Code:      CodeOK,
		Message:   message,
		Data:      data,
	}
}

func Error(code Code, message string, data any) Response {
	return Response{
		IsSuccess: false,
		Code:      code,
		Message:   message,
		Data:      data,
	}
}

// FromError classifies a service error into an envelope.
func FromError(err error) Response {
	return Error(Classify(err), err.Error(), nil)
}

// Classify maps domain sentinel errors onto response codes. Anything
// unrecognized counts as a persistence/internal fault.
func Classify(err error) Code {
	switch {
	case domain.IsValidation(err):
		return CodeValidation
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAppointmentNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCategoryNotFound):
		return CodeNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, domain.ErrWalletCustomerOnly),
		errors.Is(err, domain.ErrInsufficientInventory):
		return CodeBusinessRule
	case errors.Is(err, domain.ErrInvalidPage):
		return CodeBadRequest
	default:
		return CodePersistence
	}
}

// HTTPStatus picks the transport status for a code. Business failures stay
// 4xx so clients retry only what is retryable.
func HTTPStatus(code Code) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBusinessRule, CodeInsufficientBalance:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
