package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"eFurnitureMarket/domain"
	"eFurnitureMarket/pkg/pagination"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	DB *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{
		DB: db,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	return r.DB.WithContext(ctx).Create(appointment).Error
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uint) (domain.Appointment, error) {
	var appointment domain.Appointment

	err := r.DB.WithContext(ctx).
		Preload("Details.User").
		First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Appointment{}, domain.ErrAppointmentNotFound
		}
		return domain.Appointment{}, err
	}

	return appointment, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id uint, status int) error {
	result := r.DB.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}

	return nil
}

// FindPage runs the whole paged view in a single database transaction: the
// Customer and Staff id sets, the filtered count and the page itself all see
// one snapshot, so a role change cannot race the appointment rows.
func (r *AppointmentRepository) FindPage(ctx context.Context, filter domain.AppointmentFilter, pageIndex, pageSize int) (domain.AppointmentPage, error) {
	var page domain.AppointmentPage

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if page.CustomerIDs, err = roleIDSet(tx, domain.RoleCustomer); err != nil {
			return err
		}
		if page.StaffIDs, err = roleIDSet(tx, domain.RoleStaff); err != nil {
			return err
		}

		base := applyAppointmentFilter(tx.Model(&domain.Appointment{}), filter)

		if err := base.Count(&page.Total).Error; err != nil {
			return err
		}

		return applyAppointmentFilter(tx, filter).
			Preload("Details", func(db *gorm.DB) *gorm.DB {
				return db.Order("appointment_details.id")
			}).
			Preload("Details.User").
			Order("created_at DESC").
			Scopes(pagination.Scope(pageIndex, pageSize)).
			Find(&page.Appointments).Error
	})
	if err != nil {
		return domain.AppointmentPage{}, err
	}

	return page, nil
}

func roleIDSet(tx *gorm.DB, role string) (map[uint]struct{}, error) {
	var ids []uint
	if err := tx.Model(&domain.User{}).Where("role = ?", role).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set, nil
}

func applyAppointmentFilter(q *gorm.DB, filter domain.AppointmentFilter) *gorm.DB {
	switch filter.Kind {
	case domain.AppointmentFilterByDate:
		day := filter.Day
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		return q.Where("date >= ? AND date < ?", start, start.AddDate(0, 0, 1))
	case domain.AppointmentFilterByEmail:
		return q.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(filter.Email)+"%")
	case domain.AppointmentFilterByName:
		return q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	case domain.AppointmentFilterByStatus:
		return q.Where("status = ?", filter.Status)
	case domain.AppointmentFilterByUserName:
		return q.Where(
			"id IN (?)",
			q.Session(&gorm.Session{NewDB: true}).
				Model(&domain.AppointmentDetail{}).
				Select("appointment_details.appointment_id").
				Joins("JOIN users ON users.id = appointment_details.user_id").
				Where("users.full_name = ?", filter.UserName),
		)
	default:
		return q
	}
}
