package domain

import (
	"time"

	"gorm.io/gorm"
)

// Appointment status codes.
const (
	AppointmentStatusPending   = 1
	AppointmentStatusApproved  = 2
	AppointmentStatusCancelled = 3
	AppointmentStatusCompleted = 4
)

type Appointment struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Date        time.Time `gorm:"column:date;index;not null"`
	PhoneNumber string    `gorm:"column:phone_number"`
	Email       string    `gorm:"column:email"`
	Status      int       `gorm:"column:status;index;default:1"`
	Time        int       `gorm:"column:time_slot"`
	CreatedBy   *uint     `gorm:"column:created_by"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	Details []AppointmentDetail `gorm:"foreignKey:AppointmentID"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentDetail links a participant (customer or staff) to an
// appointment. Participants are soft-removed via IsDeleted so the link
// history stays intact.
type AppointmentDetail struct {
	ID            uint `gorm:"primaryKey"`
	AppointmentID uint `gorm:"column:appointment_id;index;not null"`
	UserID        uint `gorm:"column:user_id;index;not null"`
	IsDeleted     bool `gorm:"column:is_deleted;default:false"`
	CreatedAt     time.Time

	User *User `gorm:"foreignKey:UserID"`
}

func (AppointmentDetail) TableName() string {
	return "appointment_details"
}

// Appointment filter kinds for the paged appointment views.
const (
	AppointmentFilterNone = iota
	AppointmentFilterByDate
	AppointmentFilterByEmail
	AppointmentFilterByName
	AppointmentFilterByStatus
	AppointmentFilterByUserName
)

// AppointmentFilter narrows the paged appointment query. Kind selects which
// field is consulted; the other fields are ignored.
type AppointmentFilter struct {
	Kind     int
	Day      time.Time
	Email    string
	Name     string
	Status   int
	UserName string
}

// AppointmentView is the flattened row served by the paged appointment
// queries: appointment fields plus the participant names resolved by role.
type AppointmentView struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Date         time.Time `json:"date"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	Status       int       `json:"status"`
	Time         int       `json:"time"`
	CustomerName string    `json:"customer_name"`
	StaffName    []string  `json:"staff_name"`
}

// AppointmentPage is what the repository hands back for one page request:
// the page of appointments, the filtered total, and the Customer/Staff user
// id sets read in the same snapshot.
type AppointmentPage struct {
	Appointments []Appointment
	Total        int64
	CustomerIDs  map[uint]struct{}
	StaffIDs     map[uint]struct{}
}
