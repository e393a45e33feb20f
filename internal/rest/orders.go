package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"eFurnitureMarket/business/orders"
	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/logger"
	"eFurnitureMarket/pkg/pagination"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, req orders.CreateOrderRequest) (domain.Order, error)
		GetOrder(ctx context.Context, orderID uint) (domain.Order, error)
		GetOrdersByUser(ctx context.Context, userID uint, pageIndex, pageSize int) (pagination.Page[domain.Order], error)
		UpdateOrderStatus(ctx context.Context, orderID uint, statusCode int) error
		DeleteOrder(ctx context.Context, orderID uint) error
	}

	OrdersInput struct {
		Items []struct {
			ProductID uint64 `json:"product_id" validate:"required"`
			Quantity  int    `json:"quantity" validate:"required,gt=0"`
		} `json:"items" validate:"required,min=1,dive"`
		PayFromWallet bool `json:"pay_from_wallet"`
	}

	UpdateOrderStatusInput struct {
		StatusCode int `json:"status_code" validate:"required"`
	}
)

func NewOrdersHandler(ordersService OrdersService) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       10 * time.Second,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var request OrdersInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate order request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	req := orders.CreateOrderRequest{
		UserID:        userID,
		PayFromWallet: request.PayFromWallet,
	}
	for _, item := range request.Items {
		req.Items = append(req.Items, orders.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.ordersService.CreateOrder(ctx, req)
	if err != nil {
		logger.Error("Failed to create order", err)
		if err == domain.ErrInsufficientInventory || err == domain.ErrInsufficientBalance {
			return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

// canAccessOrder allows the order's owner plus staff and admins.
func canAccessOrder(c echo.Context, ownerID uint) bool {
	if role, ok := c.Get("role").(string); ok {
		if role == domain.RoleAdmin || role == domain.RoleStaff {
			return true
		}
	}

	userID, ok := c.Get("user_id").(uint)
	return ok && userID == ownerID
}

func (h *OrdersHandler) GetMyOrders(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	pageIndex, pageSize := parsePagingQuery(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.ordersService.GetOrdersByUser(ctx, userID, pageIndex, pageSize)
	if err != nil {
		logger.Error("Failed to get orders", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(page))
}

func (h *OrdersHandler) GetOrderByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, uint(id))
	if err != nil {
		logger.Error("Failed to get order by id", err)
		if err == domain.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if !canAccessOrder(c, order.UserID) {
		return c.JSON(http.StatusForbidden, ResponseError{Message: "forbidden"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	var request UpdateOrderStatusInput

	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed to validate order status request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.ordersService.UpdateOrderStatus(ctx, uint(id), request.StatusCode); err != nil {
		logger.Error("Failed to update order status", err)
		if err == domain.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Order status updated successfully"))
}

func (h *OrdersHandler) DeleteOrder(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order ID"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, uint(id))
	if err != nil {
		if err == domain.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if !canAccessOrder(c, order.UserID) {
		return c.JSON(http.StatusForbidden, ResponseError{Message: "forbidden"})
	}

	if err := h.ordersService.DeleteOrder(ctx, uint(id)); err != nil {
		logger.Error("Failed to delete order", err)
		if err == domain.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Order deleted successfully"))
}
