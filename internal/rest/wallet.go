package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"eFurnitureMarket/business/wallet"
	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/logger"
	"eFurnitureMarket/pkg/pagination"
	"eFurnitureMarket/pkg/response"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type WalletService interface {
	AddBalance(ctx context.Context, req wallet.UpdateWalletRequest) (domain.Transaction, error)
	SubtractBalance(ctx context.Context, req wallet.UpdateWalletRequest) (domain.Transaction, error)
	GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
	GetTransactions(ctx context.Context, userID uint, pageIndex, pageSize int) (pagination.Page[domain.Transaction], error)
}

type WalletHandler struct {
	walletService WalletService
	timeout       time.Duration
}

func NewWalletHandler(walletService WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		timeout:       10 * time.Second,
	}
}

// respondError translates a service error into the uniform envelope.
func respondError(c echo.Context, err error) error {
	envelope := response.FromError(err)
	return c.JSON(response.HTTPStatus(envelope.Code), envelope)
}

func (h *WalletHandler) AddBalance(c echo.Context) error {
	var req wallet.UpdateWalletRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeBadRequest, err.Error(), nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	record, err := h.walletService.AddBalance(ctx, req)
	if err != nil {
		logger.Error("Failed to add wallet balance", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success("Balance added successfully", record))
}

func (h *WalletHandler) SubtractBalance(c echo.Context) error {
	var req wallet.UpdateWalletRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeBadRequest, err.Error(), nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	record, err := h.walletService.SubtractBalance(ctx, req)
	if err != nil {
		logger.Error("Failed to subtract wallet balance", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success("Balance subtracted successfully", record))
}

func (h *WalletHandler) GetBalance(c echo.Context) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeBadRequest, "invalid user ID", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	balance, err := h.walletService.GetBalance(ctx, userID)
	if err != nil {
		logger.Error("Failed to get wallet balance", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success("Balance retrieved successfully", map[string]interface{}{
		"user_id": userID,
		"balance": balance,
	}))
}

func (h *WalletHandler) GetTransactions(c echo.Context) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeBadRequest, "invalid user ID", nil))
	}

	pageIndex, pageSize := parsePagingQuery(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.walletService.GetTransactions(ctx, userID, pageIndex, pageSize)
	if err != nil {
		logger.Error("Failed to get wallet transactions", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success("Transactions retrieved successfully", page))
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}

// parsePagingQuery reads page_index/page_size from the query string, leaving
// range checking to pagination.Normalize.
func parsePagingQuery(c echo.Context) (int, int) {
	pageIndex := 0
	pageSize := pagination.DefaultPageSize

	if raw := c.QueryParam("page_index"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			pageIndex = v
		} else {
			pageIndex = -1
		}
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			pageSize = v
		} else {
			pageSize = 0
		}
	}

	return pageIndex, pageSize
}
