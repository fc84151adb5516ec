package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/service/reservations/models"
	"github.com/velline/salon-booking-service/pkg/types"
)

type fakeReservationRepo struct {
	reservation *domain.Reservation
	list        []*domain.Reservation
	lastFilter  *domain.StaffReservationsFilter
}

func (f *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if f.reservation == nil {
		return nil, assert.AnError
	}
	return f.reservation, nil
}

func (f *fakeReservationRepo) ListByClient(_ context.Context, _ int64, _ *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return f.list, nil
}

func (f *fakeReservationRepo) ListByStaffWithFilter(_ context.Context, filter domain.StaffReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = &filter
	return f.list, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sampleReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:        50,
		ClientID:  10,
		StaffID:   1,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
		Status:    domain.StatusConfirmed,
	}
}

func TestGetByID_OwnerSeesOwnReservation(t *testing.T) {
	svc := NewService(&fakeReservationRepo{reservation: sampleReservation()}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 50, domain.Actor{ID: 10, Role: domain.RoleClient})
	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestGetByID_ForeignClientDenied(t *testing.T) {
	svc := NewService(&fakeReservationRepo{reservation: sampleReservation()}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 50, domain.Actor{ID: 77, Role: domain.RoleClient})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AdminSeesAny(t *testing.T) {
	svc := NewService(&fakeReservationRepo{reservation: sampleReservation()}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 50, domain.Actor{ID: 999, Role: domain.RoleAdmin})
	require.NoError(t, err)
}

func TestListByClient_ForeignHistoryDenied(t *testing.T) {
	svc := NewService(&fakeReservationRepo{}, nopLogger{})

	_, err := svc.ListByClient(context.Background(), &models.ListClientReservationsRequest{
		ClientID: 10,
		Actor:    domain.Actor{ID: 77, Role: domain.RoleClient},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListByClient_InvalidStatusFilter(t *testing.T) {
	svc := NewService(&fakeReservationRepo{}, nopLogger{})
	badStatus := "vanished"

	_, err := svc.ListByClient(context.Background(), &models.ListClientReservationsRequest{
		ClientID: 10,
		Actor:    domain.Actor{ID: 10, Role: domain.RoleClient},
		Status:   &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByStaff_ClientDenied(t *testing.T) {
	svc := NewService(&fakeReservationRepo{}, nopLogger{})

	_, err := svc.ListByStaff(context.Background(), &models.ListStaffReservationsRequest{
		StaffID: 1,
		Actor:   domain.Actor{ID: 10, Role: domain.RoleClient},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListByStaff_FilterPassedThrough(t *testing.T) {
	repo := &fakeReservationRepo{list: []*domain.Reservation{sampleReservation()}}
	svc := NewService(repo, nopLogger{})

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	status := string(domain.StatusConfirmed)

	resp, err := svc.ListByStaff(context.Background(), &models.ListStaffReservationsRequest{
		StaffID:   1,
		Actor:     domain.Actor{ID: 1, Role: domain.RoleStaff},
		StartDate: &date,
		EndDate:   &date,
		Status:    &status,
	})
	require.NoError(t, err)

	require.Len(t, resp.Reservations, 1)
	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, int64(1), repo.lastFilter.StaffID)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
}
