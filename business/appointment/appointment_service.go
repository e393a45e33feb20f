package appointment

import (
	"context"
	"fmt"
	"time"

	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/logger"
	"eFurnitureMarket/pkg/metrics"
	"eFurnitureMarket/pkg/pagination"

	"github.com/go-playground/validator/v10"
)

// AppointmentRepository contract interface
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	FindByID(ctx context.Context, id uint) (domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status int) error
	FindPage(ctx context.Context, filter domain.AppointmentFilter, pageIndex, pageSize int) (domain.AppointmentPage, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) error
}

type appointmentService struct {
	appointmentRepo AppointmentRepository
	notifRepo       NotificationRepository
	validate        *validator.Validate
}

func NewAppointmentService(
	appointmentRepo AppointmentRepository,
	notifRepo NotificationRepository,
	validate *validator.Validate,
) *appointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		notifRepo:       notifRepo,
		validate:        validate,
	}
}

// GetPage serves one page of the appointment view: appointments newest
// first, optionally filtered, with customer and staff names resolved
// against the current role membership.
func (s *appointmentService) GetPage(ctx context.Context, pageIndex, pageSize int, filter domain.AppointmentFilter) (pagination.Page[domain.AppointmentView], error) {
	pageIndex, pageSize, err := pagination.Normalize(pageIndex, pageSize)
	if err != nil {
		return pagination.Page[domain.AppointmentView]{}, err
	}

	started := time.Now()
	data, err := s.appointmentRepo.FindPage(ctx, filter, pageIndex, pageSize)
	metrics.AppointmentQueryLatency.Observe(time.Since(started).Seconds())
	if err != nil {
		logger.Error("Failed to load appointment page", err)
		return pagination.Page[domain.AppointmentView]{}, err
	}

	views := make([]domain.AppointmentView, 0, len(data.Appointments))
	for _, appointment := range data.Appointments {
		views = append(views, buildView(appointment, data.CustomerIDs, data.StaffIDs))
	}

	return pagination.New(pageIndex, pageSize, data.Total, views), nil
}

// buildView flattens one appointment. CustomerName is the username of the
// first non-deleted participant holding the Customer role, in participant
// order. StaffName collects the display names of every non-deleted staff
// participant and is always a slice, never nil.
func buildView(appointment domain.Appointment, customerIDs, staffIDs map[uint]struct{}) domain.AppointmentView {
	view := domain.AppointmentView{
		ID:          appointment.ID,
		Name:        appointment.Name,
		Date:        appointment.Date,
		PhoneNumber: appointment.PhoneNumber,
		Email:       appointment.Email,
		Status:      appointment.Status,
		Time:        appointment.Time,
		StaffName:   []string{},
	}

	for _, detail := range appointment.Details {
		if detail.IsDeleted || detail.User == nil {
			continue
		}

		if _, ok := customerIDs[detail.UserID]; ok && view.CustomerName == "" {
			view.CustomerName = detail.User.UserName
		}

		if _, ok := staffIDs[detail.UserID]; ok {
			view.StaffName = append(view.StaffName, detail.User.FullName)
		}
	}

	return view
}

type CreateAppointmentRequest struct {
	Name           string    `json:"name" validate:"required"`
	Date           time.Time `json:"date" validate:"required"`
	PhoneNumber    string    `json:"phone_number" validate:"required"`
	Email          string    `json:"email" validate:"omitempty,email"`
	Time           int       `json:"time" validate:"gte=0"`
	CreatedBy      *uint     `json:"created_by"`
	ParticipantIDs []uint    `json:"participant_ids"`
}

func (s *appointmentService) Create(ctx context.Context, req CreateAppointmentRequest) (domain.Appointment, error) {
	if err := s.validate.Struct(&req); err != nil {
		logger.Error("Appointment request failed validation", err)
		return domain.Appointment{}, &domain.ValidationError{Message: err.Error()}
	}

	appointment := domain.Appointment{
		Name:        req.Name,
		Date:        req.Date,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Status:      domain.AppointmentStatusPending,
		Time:        req.Time,
		CreatedBy:   req.CreatedBy,
	}
	for _, userID := range req.ParticipantIDs {
		appointment.Details = append(appointment.Details, domain.AppointmentDetail{UserID: userID})
	}

	if err := s.appointmentRepo.Create(ctx, &appointment); err != nil {
		logger.Error("Failed to create appointment", err)
		return domain.Appointment{}, err
	}

	if appointment.Email != "" {
		subject := "Your eFurniture appointment is booked"
		body := fmt.Sprintf("Hi %v, your appointment on %v (slot %v) has been received and is pending confirmation.",
			appointment.Name, appointment.Date.Format("2006-01-02"), appointment.Time)
		if err := s.notifRepo.SendEmail(appointment.Name, appointment.Email, subject, body); err != nil {
			logger.Warn("Failed to send appointment confirmation email", err)
		}
	}

	return appointment, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id uint) (domain.Appointment, error) {
	return s.appointmentRepo.FindByID(ctx, id)
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id uint, status int) error {
	if status < domain.AppointmentStatusPending || status > domain.AppointmentStatusCompleted {
		return &domain.ValidationError{Message: "unknown appointment status"}
	}

	return s.appointmentRepo.UpdateStatus(ctx, id, status)
}

func (s *appointmentService) Cancel(ctx context.Context, id uint) error {
	return s.appointmentRepo.UpdateStatus(ctx, id, domain.AppointmentStatusCancelled)
}
