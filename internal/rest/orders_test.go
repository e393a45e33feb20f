package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"eFurnitureMarket/business/orders"
	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/pagination"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrdersService struct {
	order   domain.Order
	deleted []uint
}

func (s *stubOrdersService) CreateOrder(ctx context.Context, req orders.CreateOrderRequest) (domain.Order, error) {
	return s.order, nil
}

func (s *stubOrdersService) GetOrder(ctx context.Context, orderID uint) (domain.Order, error) {
	if orderID != s.order.ID {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *stubOrdersService) GetOrdersByUser(ctx context.Context, userID uint, pageIndex, pageSize int) (pagination.Page[domain.Order], error) {
	return pagination.Page[domain.Order]{}, nil
}

func (s *stubOrdersService) UpdateOrderStatus(ctx context.Context, orderID uint, statusCode int) error {
	return nil
}

func (s *stubOrdersService) DeleteOrder(ctx context.Context, orderID uint) error {
	s.deleted = append(s.deleted, orderID)
	return nil
}

func newOrderContext(t *testing.T, method, target string, userID uint, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/orders/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("user_id", userID)
	c.Set("role", role)
	return c, rec
}

func TestGetOrderByID_OwnerScoped(t *testing.T) {
	svc := &stubOrdersService{order: domain.Order{ID: 5, UserID: 9}}
	h := NewOrdersHandler(svc)

	cases := []struct {
		name   string
		userID uint
		role   string
		status int
	}{
		{"owner", 9, domain.RoleCustomer, http.StatusOK},
		{"other customer", 3, domain.RoleCustomer, http.StatusForbidden},
		{"staff", 3, domain.RoleStaff, http.StatusOK},
		{"admin", 3, domain.RoleAdmin, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newOrderContext(t, http.MethodGet, "/orders/5", tc.userID, tc.role)
			require.NoError(t, h.GetOrderByID(c))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestDeleteOrder_OwnerScoped(t *testing.T) {
	svc := &stubOrdersService{order: domain.Order{ID: 5, UserID: 9}}
	h := NewOrdersHandler(svc)

	c, rec := newOrderContext(t, http.MethodDelete, "/orders/5", 3, domain.RoleCustomer)
	require.NoError(t, h.DeleteOrder(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, svc.deleted)

	c, rec = newOrderContext(t, http.MethodDelete, "/orders/5", 9, domain.RoleCustomer)
	require.NoError(t, h.DeleteOrder(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{5}, svc.deleted)
}
