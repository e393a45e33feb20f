package response

import (
	"errors"
	"net/http"
	"testing"

	"eFurnitureMarket/domain"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"validation", &domain.ValidationError{Message: "amount is required"}, CodeValidation},
		{"user not found", domain.ErrUserNotFound, CodeNotFound},
		{"appointment not found", domain.ErrAppointmentNotFound, CodeNotFound},
		{"insufficient balance", domain.ErrInsufficientBalance, CodeInsufficientBalance},
		{"customer only", domain.ErrWalletCustomerOnly, CodeBusinessRule},
		{"insufficient inventory", domain.ErrInsufficientInventory, CodeBusinessRule},
		{"invalid page", domain.ErrInvalidPage, CodeBadRequest},
		{"wrapped sentinel", errors.Join(errors.New("query failed"), domain.ErrOrderNotFound), CodeNotFound},
		{"unknown", errors.New("connection refused"), CodePersistence},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeOK, http.StatusOK},
		{CodeValidation, http.StatusBadRequest},
		{CodeBadRequest, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeBusinessRule, http.StatusUnprocessableEntity},
		{CodeInsufficientBalance, http.StatusUnprocessableEntity},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodePersistence, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.code), string(tc.code))
	}
}

func TestFromError(t *testing.T) {
	envelope := FromError(domain.ErrInsufficientBalance)

	assert.False(t, envelope.IsSuccess)
	assert.Equal(t, CodeInsufficientBalance, envelope.Code)
	assert.Equal(t, "insufficient balance in the account", envelope.Message)
	assert.Nil(t, envelope.Data)
}

func TestSuccess(t *testing.T) {
	envelope := Success("done", map[string]int{"n": 1})

	assert.True(t, envelope.IsSuccess)
	assert.Equal(t, CodeOK, envelope.Code)
	assert.Equal(t, "done", envelope.Message)
	assert.NotNil(t, envelope.Data)
}
