package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velline/salon-booking-service/internal/domain"
	scheduleRepo "github.com/velline/salon-booking-service/internal/infra/storage/schedule"
	"github.com/velline/salon-booking-service/pkg/types"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeReservationRepo) GetBlockingByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.reservations, f.err
}

type fakeScheduleRepo struct {
	hours *domain.StaffWorkingHours
	err   error
}

func (f *fakeScheduleRepo) GetByStaffAndDate(_ context.Context, _ int64, _ time.Time) (*domain.StaffWorkingHours, error) {
	return f.hours, f.err
}

type fakeCatalogRepo struct {
	staff    *domain.Staff
	staffErr error
	tier     *domain.ServiceDurationTier
	tierErr  error
	offering *domain.StaffServiceOffering
	offerErr error
}

func (f *fakeCatalogRepo) GetStaff(_ context.Context, _ int64) (*domain.Staff, error) {
	return f.staff, f.staffErr
}

func (f *fakeCatalogRepo) GetDurationTier(_ context.Context, _ int64) (*domain.ServiceDurationTier, error) {
	return f.tier, f.tierErr
}

func (f *fakeCatalogRepo) GetOffering(_ context.Context, _, _ int64) (*domain.StaffServiceOffering, error) {
	return f.offering, f.offerErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testRequest() *Request {
	return &Request{
		StaffID:        1,
		ServiceID:      2,
		DurationTierID: 3,
		Date:           time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
	}
}

func activeCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		staff: &domain.Staff{ID: 1, IsActive: true, Name: domain.LocalizedText{"en": "Anna"}},
		tier: &domain.ServiceDurationTier{
			ID: 3, ServiceID: 2, DurationMinutes: 60, IsActive: true,
		},
		offering: &domain.StaffServiceOffering{StaffID: 1, ServiceID: 2},
	}
}

func workingDay(open, close string) *domain.StaffWorkingHours {
	return &domain.StaffWorkingHours{
		StaffID:   1,
		OpenTime:  types.TimeString(open),
		CloseTime: types.TimeString(close),
		IsDayOff:  false,
	}
}

func TestExecute_HappyPath(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeScheduleRepo{hours: workingDay("09:00", "18:00")},
		activeCatalog(),
		15,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, resp.Slots, 33)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "17:00", resp.Slots[32].StartTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_DayOffReturnsEmptyList(t *testing.T) {
	hours := workingDay("09:00", "18:00")
	hours.IsDayOff = true

	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeScheduleRepo{hours: hours},
		activeCatalog(),
		15,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
}

func TestExecute_NoScheduleReturnsEmptyList(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeScheduleRepo{err: scheduleRepo.ErrWorkingHoursNotFound},
		activeCatalog(),
		15,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BusyReservationExcludesSlots(t *testing.T) {
	busy := []*domain.Reservation{{
		ID:        42,
		StaffID:   1,
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
		Status:    domain.StatusConfirmed,
	}}

	uc := NewUseCase(
		&fakeReservationRepo{reservations: busy},
		&fakeScheduleRepo{hours: workingDay("09:00", "18:00")},
		activeCatalog(),
		15,
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	starts := make(map[string]bool)
	for _, s := range resp.Slots {
		starts[s.StartTime.String()] = true
	}
	assert.False(t, starts["10:00"])
	assert.False(t, starts["09:30"]) // услуга 60 минут влезла бы до 10:30
	assert.True(t, starts["11:15"])
}

func TestExecute_InactiveStaff(t *testing.T) {
	catalog := activeCatalog()
	catalog.staff.IsActive = false

	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeScheduleRepo{hours: workingDay("09:00", "18:00")},
		catalog,
		15,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_TierFromAnotherService(t *testing.T) {
	catalog := activeCatalog()
	catalog.tier.ServiceID = 99

	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeScheduleRepo{hours: workingDay("09:00", "18:00")},
		catalog,
		15,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInvalidServiceDuration)
}

func TestExecute_ServiceNotOffered(t *testing.T) {
	catalog := activeCatalog()
	catalog.offering = nil
	catalog.offerErr = assert.AnError

	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeScheduleRepo{hours: workingDay("09:00", "18:00")},
		catalog,
		15,
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrServiceNotOffered)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{},
		&fakeScheduleRepo{hours: workingDay("09:00", "18:00")},
		activeCatalog(),
		15,
		nopLogger{},
	)

	req := testRequest()
	req.StaffID = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
