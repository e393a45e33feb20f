package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"eFurnitureMarket/business/appointment"
	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/logger"
	"eFurnitureMarket/pkg/pagination"
	"eFurnitureMarket/pkg/response"

	"github.com/labstack/echo/v4"
)

type AppointmentService interface {
	GetPage(ctx context.Context, pageIndex, pageSize int, filter domain.AppointmentFilter) (pagination.Page[domain.AppointmentView], error)
	Create(ctx context.Context, req appointment.CreateAppointmentRequest) (domain.Appointment, error)
	GetByID(ctx context.Context, id uint) (domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status int) error
	Cancel(ctx context.Context, id uint) error
}

type AppointmentHandler struct {
	appointmentService AppointmentService
	timeout            time.Duration
}

func NewAppointmentHandler(appointmentService AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		timeout:            10 * time.Second,
	}
}

// GetAppointments serves the paged appointment view. At most one filter
// applies per request, picked by the search-by query parameter.
func (h *AppointmentHandler) GetAppointments(c echo.Context) error {
	filter, err := parseAppointmentFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeBadRequest, err.Error(), nil))
	}

	pageIndex, pageSize := parsePagingQuery(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.appointmentService.GetPage(ctx, pageIndex, pageSize, filter)
	if err != nil {
		logger.Error("Failed to get appointments", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success("Appointments retrieved successfully", page))
}

func (h *AppointmentHandler) GetAppointmentByID(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeBadRequest, "invalid appointment ID", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	record, err := h.appointmentService.GetByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get appointment", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success("Appointment retrieved successfully", record))
}

func (h *AppointmentHandler) CreateAppointment(c echo.Context) error {
	var req appointment.CreateAppointmentRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeBadRequest, err.Error(), nil))
	}

	if userID, ok := c.Get("user_id").(uint); ok && req.CreatedBy == nil {
		req.CreatedBy = &userID
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	record, err := h.appointmentService.Create(ctx, req)
	if err != nil {
		logger.Error("Failed to create appointment", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, response.Success("Appointment created successfully", record))
}

type UpdateAppointmentStatusRequest struct {
	Status int `json:"status"`
}

func (h *AppointmentHandler) UpdateAppointmentStatus(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeBadRequest, "invalid appointment ID", nil))
	}

	var req UpdateAppointmentStatusRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeBadRequest, err.Error(), nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.appointmentService.UpdateStatus(ctx, id, req.Status); err != nil {
		logger.Error("Failed to update appointment status", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success("Appointment status updated successfully", nil))
}

func (h *AppointmentHandler) CancelAppointment(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error(response.CodeBadRequest, "invalid appointment ID", nil))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.appointmentService.Cancel(ctx, id); err != nil {
		logger.Error("Failed to cancel appointment", err)
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, response.Success("Appointment cancelled successfully", nil))
}

func parseAppointmentFilter(c echo.Context) (domain.AppointmentFilter, error) {
	value := c.QueryParam("search")

	switch c.QueryParam("search_by") {
	case "":
		return domain.AppointmentFilter{Kind: domain.AppointmentFilterNone}, nil
	case "date":
		day, err := time.Parse("2006-01-02", value)
		if err != nil {
			return domain.AppointmentFilter{}, err
		}
		return domain.AppointmentFilter{Kind: domain.AppointmentFilterByDate, Day: day}, nil
	case "email":
		return domain.AppointmentFilter{Kind: domain.AppointmentFilterByEmail, Email: value}, nil
	case "name":
		return domain.AppointmentFilter{Kind: domain.AppointmentFilterByName, Name: value}, nil
	case "status":
		status, err := strconv.Atoi(value)
		if err != nil {
			return domain.AppointmentFilter{}, err
		}
		return domain.AppointmentFilter{Kind: domain.AppointmentFilterByStatus, Status: status}, nil
	case "user_name":
		return domain.AppointmentFilter{Kind: domain.AppointmentFilterByUserName, UserName: value}, nil
	default:
		return domain.AppointmentFilter{}, &domain.ValidationError{Message: "unknown search_by value"}
	}
}
