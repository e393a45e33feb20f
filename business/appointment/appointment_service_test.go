package appointment

import (
	"context"
	"testing"
	"time"

	"eFurnitureMarket/domain"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointmentRepo struct {
	page       domain.AppointmentPage
	lastFilter domain.AppointmentFilter
	lastIndex  int
	lastSize   int

	created      []domain.Appointment
	statusByID   map[uint]int
	updateCalled int
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment *domain.Appointment) error {
	appointment.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *appointment)
	return nil
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, id uint) (domain.Appointment, error) {
	for _, a := range f.created {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Appointment{}, domain.ErrAppointmentNotFound
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id uint, status int) error {
	if f.statusByID == nil {
		f.statusByID = make(map[uint]int)
	}
	f.statusByID[id] = status
	f.updateCalled++
	return nil
}

func (f *fakeAppointmentRepo) FindPage(ctx context.Context, filter domain.AppointmentFilter, pageIndex, pageSize int) (domain.AppointmentPage, error) {
	f.lastFilter = filter
	f.lastIndex = pageIndex
	f.lastSize = pageSize
	return f.page, nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) SendEmail(toName, toEmail, subject, message string) error {
	f.sent = append(f.sent, toEmail)
	return nil
}

func user(id uint, userName, fullName string) *domain.User {
	return &domain.User{ID: id, UserName: userName, FullName: fullName}
}

func TestGetPage_NameResolution(t *testing.T) {
	repo := &fakeAppointmentRepo{
		page: domain.AppointmentPage{
			Appointments: []domain.Appointment{
				{
					ID:   1,
					Name: "Sofa consultation",
					Details: []domain.AppointmentDetail{
						{UserID: 10, User: user(10, "staff_anna", "Anna Smith")},
						{UserID: 20, User: user(20, "cust_bob", "Bob Jones")},
						{UserID: 21, User: user(21, "cust_carol", "Carol White")},
						{UserID: 11, User: user(11, "staff_dave", "Dave Brown")},
					},
				},
			},
			Total:       1,
			CustomerIDs: map[uint]struct{}{20: {}, 21: {}},
			StaffIDs:    map[uint]struct{}{10: {}, 11: {}},
		},
	}
	svc := NewAppointmentService(repo, &fakeNotifier{}, validator.New())

	page, err := svc.GetPage(context.Background(), 0, 10, domain.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	view := page.Items[0]
	// first customer participant wins, identified by username
	assert.Equal(t, "cust_bob", view.CustomerName)
	// staff resolve to full names, in participant order
	assert.Equal(t, []string{"Anna Smith", "Dave Brown"}, view.StaffName)
}

func TestGetPage_SkipsDeletedAndOrphanedParticipants(t *testing.T) {
	repo := &fakeAppointmentRepo{
		page: domain.AppointmentPage{
			Appointments: []domain.Appointment{
				{
					ID: 1,
					Details: []domain.AppointmentDetail{
						{UserID: 20, IsDeleted: true, User: user(20, "cust_gone", "Gone Customer")},
						{UserID: 21, User: user(21, "cust_here", "Here Customer")},
						{UserID: 10, User: nil},
					},
				},
			},
			Total:       1,
			CustomerIDs: map[uint]struct{}{20: {}, 21: {}},
			StaffIDs:    map[uint]struct{}{10: {}},
		},
	}
	svc := NewAppointmentService(repo, &fakeNotifier{}, validator.New())

	page, err := svc.GetPage(context.Background(), 0, 10, domain.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	assert.Equal(t, "cust_here", page.Items[0].CustomerName)
	assert.Empty(t, page.Items[0].StaffName)
}

func TestGetPage_StaffNameNeverNil(t *testing.T) {
	repo := &fakeAppointmentRepo{
		page: domain.AppointmentPage{
			Appointments: []domain.Appointment{{ID: 1}},
			Total:        1,
		},
	}
	svc := NewAppointmentService(repo, &fakeNotifier{}, validator.New())

	page, err := svc.GetPage(context.Background(), 0, 10, domain.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	assert.NotNil(t, page.Items[0].StaffName)
	assert.Len(t, page.Items[0].StaffName, 0)
}

func TestGetPage_PagingMetadata(t *testing.T) {
	repo := &fakeAppointmentRepo{
		page: domain.AppointmentPage{Total: 42},
	}
	svc := NewAppointmentService(repo, &fakeNotifier{}, validator.New())

	page, err := svc.GetPage(context.Background(), 3, 10, domain.AppointmentFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, page.PageIndex)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, int64(42), page.TotalItemsCount)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	assert.Equal(t, 3, repo.lastIndex)
	assert.Equal(t, 10, repo.lastSize)
}

func TestGetPage_ClampsOversizedPage(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc := NewAppointmentService(repo, &fakeNotifier{}, validator.New())

	_, err := svc.GetPage(context.Background(), 0, 5000, domain.AppointmentFilter{})
	require.NoError(t, err)

	assert.Equal(t, 100, repo.lastSize)
}

func TestGetPage_RejectsInvalidPaging(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc := NewAppointmentService(repo, &fakeNotifier{}, validator.New())

	_, err := svc.GetPage(context.Background(), -1, 10, domain.AppointmentFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidPage)

	_, err = svc.GetPage(context.Background(), 0, 0, domain.AppointmentFilter{})
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
}

func TestCreate(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	notifier := &fakeNotifier{}
	svc := NewAppointmentService(repo, notifier, validator.New())

	record, err := svc.Create(context.Background(), CreateAppointmentRequest{
		Name:           "Showroom visit",
		Date:           time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PhoneNumber:    "0123456789",
		Email:          "visitor@example.com",
		Time:           2,
		ParticipantIDs: []uint{5, 6},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AppointmentStatusPending, record.Status)
	require.Len(t, record.Details, 2)
	assert.Equal(t, uint(5), record.Details[0].UserID)
	assert.Equal(t, []string{"visitor@example.com"}, notifier.sent)
}

func TestCreate_Validation(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc := NewAppointmentService(repo, &fakeNotifier{}, validator.New())

	_, err := svc.Create(context.Background(), CreateAppointmentRequest{
		Name: "", PhoneNumber: "0123",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, repo.created)
}

func TestUpdateStatus_RangeCheck(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc := NewAppointmentService(repo, &fakeNotifier{}, validator.New())

	err := svc.UpdateStatus(context.Background(), 1, 99)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, repo.updateCalled)

	err = svc.UpdateStatus(context.Background(), 1, domain.AppointmentStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusApproved, repo.statusByID[1])
}

func TestCancel(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	svc := NewAppointmentService(repo, &fakeNotifier{}, validator.New())

	require.NoError(t, svc.Cancel(context.Background(), 7))
	assert.Equal(t, domain.AppointmentStatusCancelled, repo.statusByID[7])
}
