package change_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velline/salon-booking-service/internal/domain"
	reservationRepo "github.com/velline/salon-booking-service/internal/infra/storage/reservation"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
	"github.com/velline/salon-booking-service/internal/usecase/promote_waitlist"
	"github.com/velline/salon-booking-service/pkg/types"
)

type fakeReservationRepo struct {
	reservation *domain.Reservation

	updatedStatus *domain.ReservationStatus
	cancelled     *domain.ReservationStatus
	cancelReason  *string
}

func (f *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if f.reservation == nil {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return f.reservation, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, _ int64, status domain.ReservationStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, _ int64, status domain.ReservationStatus, reason *string) error {
	f.cancelled = &status
	f.cancelReason = reason
	return nil
}

type fakePromoter struct {
	calls    []*promote_waitlist.Request
	promoted bool
}

func (f *fakePromoter) Execute(_ context.Context, req *promote_waitlist.Request) (*promote_waitlist.Response, error) {
	f.calls = append(f.calls, req)
	return &promote_waitlist.Response{Promoted: f.promoted}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	sent chan notifier.TemplateType
}

func (f *fakeNotifier) Send(_ context.Context, _ int64, templateType notifier.TemplateType, _ string, _ map[string]string) error {
	f.sent <- templateType
	return nil
}

type fakeMetrics struct {
	cancelled int
}

func (f *fakeMetrics) IncBookingCancelled() { f.cancelled++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var fixedNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *fakeReservationRepo
	promoter *fakePromoter
	metrics  *fakeMetrics
	uc       *UseCase
}

func newFixture(t *testing.T, status domain.ReservationStatus, date time.Time) *fixture {
	t.Helper()

	f := &fixture{
		repo: &fakeReservationRepo{
			reservation: &domain.Reservation{
				ID:        50,
				ClientID:  10,
				StaffID:   1,
				Date:      date,
				StartTime: types.TimeString("10:00"),
				EndTime:   types.TimeString("11:00"),
				Status:    status,
				LineItems: []domain.ReservationLineItem{
					{ServiceID: 2, DurationTierID: 3, DurationMinutes: 60},
				},
			},
		},
		promoter: &fakePromoter{},
		metrics:  &fakeMetrics{},
	}

	f.uc = NewUseCase(f.repo, f.promoter, fakeTxManager{}, nil, f.metrics, "ru", nopLogger{})
	f.uc.now = func() time.Time { return fixedNow }
	return f
}

func pastDate() time.Time {
	return time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
}

func futureDate() time.Time {
	return time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
}

func client(id int64) domain.Actor { return domain.Actor{ID: id, Role: domain.RoleClient} }
func admin() domain.Actor          { return domain.Actor{ID: 999, Role: domain.RoleAdmin} }

func TestExecute_ClientCancelsOwnPendingReservation(t *testing.T) {
	f := newFixture(t, domain.StatusPendingConfirmation, futureDate())
	reason := "client changed plans"

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         client(10),
		NewStatus:     domain.StatusCancelledByClient,
		Reason:        &reason,
	})
	require.NoError(t, err)

	assert.True(t, resp.Changed)
	assert.Equal(t, domain.StatusCancelledByClient, resp.Status)
	require.NotNil(t, f.repo.cancelled)
	assert.Equal(t, domain.StatusCancelledByClient, *f.repo.cancelled)
	require.NotNil(t, f.repo.cancelReason)
	assert.Equal(t, reason, *f.repo.cancelReason)
	assert.Equal(t, 1, f.metrics.cancelled)
}

func TestExecute_ClientCannotCancelForeignReservation(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed, futureDate())

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         client(77),
		NewStatus:     domain.StatusCancelledByClient,
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, f.repo.cancelled)
}

func TestExecute_ClientCannotCancelCompleted(t *testing.T) {
	f := newFixture(t, domain.StatusCompleted, pastDate())

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         client(10),
		NewStatus:     domain.StatusCancelledByClient,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_ClientCannotCancelInProgress(t *testing.T) {
	f := newFixture(t, domain.StatusInProgress, pastDate())

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         client(10),
		NewStatus:     domain.StatusCancelledByClient,
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_ClientCannotConfirm(t *testing.T) {
	f := newFixture(t, domain.StatusPendingConfirmation, futureDate())

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         client(10),
		NewStatus:     domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_AdminIsNotBoundByTransitionTable(t *testing.T) {
	// Админ может отменить даже завершенную запись
	f := newFixture(t, domain.StatusCompleted, pastDate())

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         admin(),
		NewStatus:     domain.StatusCancelledByAdmin,
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
}

func TestExecute_AdminCannotReviveCancelledReservation(t *testing.T) {
	// Отмена терминальна: интервал освобожден и мог быть перебронирован
	// или обещан листу ожидания, возврат в блокирующий статус обошел бы
	// проверку конфликтов
	for _, cancelled := range []domain.ReservationStatus{
		domain.StatusCancelledByClient,
		domain.StatusCancelledByAdmin,
	} {
		t.Run(string(cancelled), func(t *testing.T) {
			f := newFixture(t, cancelled, futureDate())

			_, err := f.uc.Execute(context.Background(), &Request{
				ReservationID: 50,
				Actor:         admin(),
				NewStatus:     domain.StatusConfirmed,
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Nil(t, f.repo.updatedStatus)
		})
	}
}

func TestExecute_AdminCannotCompleteFutureReservation(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed, futureDate())

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         admin(),
		NewStatus:     domain.StatusCompleted,
	})
	assert.ErrorIs(t, err, ErrFutureCompletion)
}

func TestExecute_AdminCannotMarkFutureNoShow(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed, futureDate())

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         admin(),
		NewStatus:     domain.StatusNoShow,
	})
	assert.ErrorIs(t, err, ErrFutureCompletion)
}

func TestExecute_AdminCompletesPastReservation(t *testing.T) {
	f := newFixture(t, domain.StatusInProgress, pastDate())

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         admin(),
		NewStatus:     domain.StatusCompleted,
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	require.NotNil(t, f.repo.updatedStatus)
	assert.Equal(t, domain.StatusCompleted, *f.repo.updatedStatus)
}

func TestExecute_SameStatusIsNoOpSuccess(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed, futureDate())

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         admin(),
		NewStatus:     domain.StatusConfirmed,
	})
	require.NoError(t, err)

	assert.False(t, resp.Changed)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Nil(t, f.repo.updatedStatus)
	assert.Equal(t, 0, f.metrics.cancelled)
}

func TestExecute_ForeignClientSameStatusIsForbidden(t *testing.T) {
	// Идемпотентный выход не должен маскировать ошибку доступа
	f := newFixture(t, domain.StatusConfirmed, futureDate())

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         client(77),
		NewStatus:     domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_OwnerRepeatedCancelIsNoOpSuccess(t *testing.T) {
	f := newFixture(t, domain.StatusCancelledByClient, futureDate())

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         client(10),
		NewStatus:     domain.StatusCancelledByClient,
	})
	require.NoError(t, err)

	assert.False(t, resp.Changed)
	assert.Nil(t, f.repo.cancelled)
	assert.Empty(t, f.promoter.calls)
}

func TestExecute_CancellationTriggersWaitlistPromotion(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed, futureDate())
	f.promoter.promoted = true

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         admin(),
		NewStatus:     domain.StatusCancelledByAdmin,
	})
	require.NoError(t, err)

	assert.True(t, resp.WaitlistPromoted)
	require.Len(t, f.promoter.calls, 1)
	assert.Equal(t, int64(1), f.promoter.calls[0].StaffID)
	assert.Equal(t, []int64{2}, f.promoter.calls[0].ServiceIDs)
	assert.Equal(t, types.TimeString("10:00"), f.promoter.calls[0].FreedStart)
	assert.Equal(t, types.TimeString("11:00"), f.promoter.calls[0].FreedEnd)
}

func TestExecute_NonCancellingTransitionDoesNotTouchWaitlist(t *testing.T) {
	f := newFixture(t, domain.StatusPendingConfirmation, futureDate())

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         admin(),
		NewStatus:     domain.StatusConfirmed,
	})
	require.NoError(t, err)
	assert.Empty(t, f.promoter.calls)
	assert.Equal(t, 0, f.metrics.cancelled)
}

func TestExecute_CancellationNotificationSent(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed, futureDate())
	n := &fakeNotifier{sent: make(chan notifier.TemplateType, 1)}
	f.uc.notifier = n

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         admin(),
		NewStatus:     domain.StatusCancelledByAdmin,
	})
	require.NoError(t, err)

	select {
	case tmpl := <-n.sent:
		assert.Equal(t, notifier.TemplateBookingCancelled, tmpl)
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
}

func TestExecute_ReservationNotFound(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed, futureDate())
	f.repo.reservation = nil

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         admin(),
		NewStatus:     domain.StatusConfirmed,
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_UnknownStatus(t *testing.T) {
	f := newFixture(t, domain.StatusConfirmed, futureDate())

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 50,
		Actor:         admin(),
		NewStatus:     domain.ReservationStatus("vanished"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
