package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-LaundryService/internal/service/appointments/models"
)

// nopLogger заглушка логгера для тестов
type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fixedTimeProvider фиксирует "сейчас" для тестов
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type userQuery struct {
	userID       int64
	upcomingOnly bool
	now          time.Time
}

type mockAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
	cancelled    []int64
	statuses     map[int64]domain.AppointmentStatus
	lastUserQ    *userQuery
	lastFilter   *domain.HallAppointmentsFilter
}

func newMockAppointmentRepo(appts ...*domain.Appointment) *mockAppointmentRepo {
	m := &mockAppointmentRepo{
		appointments: make(map[int64]*domain.Appointment),
		statuses:     make(map[int64]domain.AppointmentStatus),
	}
	for _, appt := range appts {
		m.appointments[appt.ID] = appt
	}
	return m
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := m.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (m *mockAppointmentRepo) GetByUserID(_ context.Context, userID int64, upcomingOnly bool, now time.Time) ([]*domain.Appointment, error) {
	m.lastUserQ = &userQuery{userID: userID, upcomingOnly: upcomingOnly, now: now}

	result := make([]*domain.Appointment, 0)
	for _, appt := range m.appointments {
		if appt.UserID == userID {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (m *mockAppointmentRepo) GetByHallWithFilter(_ context.Context, filter domain.HallAppointmentsFilter) ([]*domain.Appointment, error) {
	m.lastFilter = &filter

	result := make([]*domain.Appointment, 0)
	for _, appt := range m.appointments {
		if appt.HallID == filter.HallID {
			result = append(result, appt)
		}
	}
	return result, nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	if _, ok := m.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	m.statuses[id] = status
	return nil
}

func (m *mockAppointmentRepo) Cancel(_ context.Context, id int64) error {
	appt, ok := m.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = domain.StatusCancelled
	m.cancelled = append(m.cancelled, id)
	return nil
}

type credit struct {
	userID    int64
	amount    float64
	reference string
}

type mockWalletClient struct {
	credits   []credit
	creditErr error
}

func (m *mockWalletClient) Credit(_ context.Context, userID int64, amount float64, reference string) error {
	if m.creditErr != nil {
		return m.creditErr
	}
	m.credits = append(m.credits, credit{userID: userID, amount: amount, reference: reference})
	return nil
}

const testUserID = int64(42)

func pendingAppt(id int64) *domain.Appointment {
	machineID := int64(3)
	return &domain.Appointment{
		ID:                  id,
		UserID:              testUserID,
		HallID:              1,
		MachineID:           &machineID,
		AppointmentDatetime: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		DurationMins:        45,
		ServiceType:         domain.ServiceWash,
		Status:              domain.StatusPending,
		TotalCost:           100,
	}
}

func setupService(repo *mockAppointmentRepo, wallet *mockWalletClient) *Service {
	svc := NewService(repo, wallet, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)}
	return svc
}

func TestService_GetByID(t *testing.T) {
	repo := newMockAppointmentRepo(pendingAppt(7))
	svc := setupService(repo, &mockWalletClient{})

	resp, err := svc.GetByID(context.Background(), 7, testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "wash", resp.ServiceType)
	assert.Equal(t, 100.0, resp.TotalCost)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := setupService(newMockAppointmentRepo(), &mockWalletClient{})

	_, err := svc.GetByID(context.Background(), 7, testUserID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_GetByID_ForeignAppointment(t *testing.T) {
	repo := newMockAppointmentRepo(pendingAppt(7))
	svc := setupService(repo, &mockWalletClient{})

	_, err := svc.GetByID(context.Background(), 7, testUserID+1)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Cancel_RefundsCost(t *testing.T) {
	repo := newMockAppointmentRepo(pendingAppt(7))
	wallet := &mockWalletClient{}
	svc := setupService(repo, wallet)

	err := svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: testUserID})
	require.NoError(t, err)

	assert.Equal(t, []int64{7}, repo.cancelled)
	require.Len(t, wallet.credits, 1)
	assert.Equal(t, "refund_appointment_7", wallet.credits[0].reference)
	assert.Equal(t, 100.0, wallet.credits[0].amount)
	assert.Equal(t, testUserID, wallet.credits[0].userID)
}

func TestService_Cancel_ForeignAppointment(t *testing.T) {
	repo := newMockAppointmentRepo(pendingAppt(7))
	wallet := &mockWalletClient{}
	svc := setupService(repo, wallet)

	err := svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: testUserID + 1})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
	assert.Empty(t, wallet.credits)
}

func TestService_Cancel_TerminalStatus(t *testing.T) {
	appt := pendingAppt(7)
	appt.Status = domain.StatusCompleted
	repo := newMockAppointmentRepo(appt)
	svc := setupService(repo, &mockWalletClient{})

	err := svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: testUserID})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, repo.cancelled)
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	appt := pendingAppt(7)
	appt.Status = domain.StatusCancelled
	repo := newMockAppointmentRepo(appt)
	svc := setupService(repo, &mockWalletClient{})

	err := svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: testUserID})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestService_Cancel_RefundFailureKeepsCancellation(t *testing.T) {
	repo := newMockAppointmentRepo(pendingAppt(7))
	wallet := &mockWalletClient{creditErr: errors.New("connection refused")}
	svc := setupService(repo, wallet)

	err := svc.Cancel(context.Background(), 7, &models.CancelAppointmentRequest{UserID: testUserID})
	assert.ErrorIs(t, err, ErrWalletUnavailable)

	// Отмена остаётся в силе, возврат будет повторён по той же ссылке
	assert.Equal(t, []int64{7}, repo.cancelled)
	assert.Equal(t, domain.StatusCancelled, repo.appointments[7].Status)
}

func TestService_GetUserAppointments_PassesUpcomingFilter(t *testing.T) {
	repo := newMockAppointmentRepo(pendingAppt(7))
	svc := setupService(repo, &mockWalletClient{})

	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID:       testUserID,
		UpcomingOnly: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	require.NotNil(t, repo.lastUserQ)
	assert.Equal(t, testUserID, repo.lastUserQ.userID)
	assert.True(t, repo.lastUserQ.upcomingOnly)
	assert.Equal(t, time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC), repo.lastUserQ.now)
}

func TestService_GetHallAppointments_BuildsFilter(t *testing.T) {
	repo := newMockAppointmentRepo(pendingAppt(7))
	svc := setupService(repo, &mockWalletClient{})

	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	serviceType := "wash"
	status := "confirmed"

	_, err := svc.GetHallAppointments(context.Background(), &models.GetHallAppointmentsRequest{
		HallID:      1,
		Date:        &date,
		ServiceType: &serviceType,
		Status:      &status,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, int64(1), repo.lastFilter.HallID)
	require.NotNil(t, repo.lastFilter.WindowStart)
	assert.Equal(t, date, *repo.lastFilter.WindowStart)
	require.NotNil(t, repo.lastFilter.WindowEnd)
	assert.Equal(t, date.Add(24*time.Hour), *repo.lastFilter.WindowEnd)
	require.NotNil(t, repo.lastFilter.ServiceType)
	assert.Equal(t, domain.ServiceWash, *repo.lastFilter.ServiceType)
	assert.Equal(t, []domain.AppointmentStatus{domain.StatusConfirmed}, repo.lastFilter.Statuses)
}

func TestService_GetHallAppointments_RejectsCompositePhaseFilter(t *testing.T) {
	svc := setupService(newMockAppointmentRepo(), &mockWalletClient{})

	// В журнале лежат только фазы wash и dry
	serviceType := "wash_dry"
	_, err := svc.GetHallAppointments(context.Background(), &models.GetHallAppointmentsRequest{
		HallID:      1,
		ServiceType: &serviceType,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateStatus(t *testing.T) {
	repo := newMockAppointmentRepo(pendingAppt(7))
	svc := setupService(repo, &mockWalletClient{})

	err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: testUserID,
		Status: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.statuses[7])
}

func TestService_UpdateStatus_CancellationRejected(t *testing.T) {
	repo := newMockAppointmentRepo(pendingAppt(7))
	svc := setupService(repo, &mockWalletClient{})

	// Отмена только через Cancel - там возврат средств
	err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: testUserID,
		Status: "cancelled",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, repo.statuses)
}

func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	repo := newMockAppointmentRepo(pendingAppt(7))
	svc := setupService(repo, &mockWalletClient{})

	err := svc.UpdateStatus(context.Background(), 7, &models.UpdateStatusRequest{
		UserID: testUserID,
		Status: "done",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_UpdateStatus_NotFound(t *testing.T) {
	svc := setupService(newMockAppointmentRepo(), &mockWalletClient{})

	err := svc.UpdateStatus(context.Background(), 99, &models.UpdateStatusRequest{
		UserID: testUserID,
		Status: "confirmed",
	})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
