package run_reminders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
)

type listCall struct {
	from, to time.Time
	statuses []domain.ReservationStatus
}

type fakeReservationRepo struct {
	starting      map[time.Time][]*domain.Reservation // ключ - from
	ending        []*domain.Reservation
	startingCalls []listCall
	endingCalls   []listCall
}

func (f *fakeReservationRepo) ListStartingBetween(_ context.Context, from, to time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.startingCalls = append(f.startingCalls, listCall{from: from, to: to, statuses: statuses})
	return f.starting[from], nil
}

func (f *fakeReservationRepo) ListEndingBetween(_ context.Context, from, to time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.endingCalls = append(f.endingCalls, listCall{from: from, to: to, statuses: statuses})
	return f.ending, nil
}

type sentMessage struct {
	clientID int64
	template notifier.TemplateType
}

type fakeNotifier struct {
	sent    []sentMessage
	failFor map[int64]bool
}

func (f *fakeNotifier) Send(_ context.Context, clientID int64, templateType notifier.TemplateType, _ string, _ map[string]string) error {
	if f.failFor[clientID] {
		return assert.AnError
	}
	f.sent = append(f.sent, sentMessage{clientID: clientID, template: templateType})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var scanNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func reservation(id, clientID int64) *domain.Reservation {
	return &domain.Reservation{ID: id, ClientID: clientID, Date: scanNow, Status: domain.StatusConfirmed}
}

func TestExecute_ScansAllThreeWindows(t *testing.T) {
	repo := &fakeReservationRepo{
		starting: map[time.Time][]*domain.Reservation{
			scanNow.Add(24 * time.Hour): {reservation(1, 10), reservation(2, 11)},
			scanNow.Add(2 * time.Hour):  {reservation(3, 12)},
		},
		ending: []*domain.Reservation{reservation(4, 13)},
	}
	n := &fakeNotifier{}
	uc := NewUseCase(repo, n, 15, "ru", nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Now: scanNow})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Reminders24h)
	assert.Equal(t, 1, resp.Reminders2h)
	assert.Equal(t, 1, resp.ReviewRequests)
	assert.Equal(t, 4, resp.Total())

	templates := make(map[notifier.TemplateType]int)
	for _, msg := range n.sent {
		templates[msg.template]++
	}
	assert.Equal(t, 2, templates[notifier.TemplateReminder24h])
	assert.Equal(t, 1, templates[notifier.TemplateReminder2h])
	assert.Equal(t, 1, templates[notifier.TemplateReviewRequest])
}

func TestExecute_WindowBounds(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := NewUseCase(repo, &fakeNotifier{}, 15, "ru", nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Now: scanNow})
	require.NoError(t, err)

	require.Len(t, repo.startingCalls, 2)
	// 24-часовой скан: [now+24h, now+24h+15m)
	assert.Equal(t, scanNow.Add(24*time.Hour), repo.startingCalls[0].from)
	assert.Equal(t, scanNow.Add(24*time.Hour+15*time.Minute), repo.startingCalls[0].to)
	// 2-часовой скан: [now+2h, now+2h+15m)
	assert.Equal(t, scanNow.Add(2*time.Hour), repo.startingCalls[1].from)
	assert.Equal(t, scanNow.Add(2*time.Hour+15*time.Minute), repo.startingCalls[1].to)

	// Запросы отзывов: завершившиеся в предыдущем окне [now-15m, now)
	require.Len(t, repo.endingCalls, 1)
	assert.Equal(t, scanNow.Add(-15*time.Minute), repo.endingCalls[0].from)
	assert.Equal(t, scanNow, repo.endingCalls[0].to)
	assert.Equal(t, []domain.ReservationStatus{domain.StatusCompleted}, repo.endingCalls[0].statuses)
}

func TestExecute_ReminderStatusesExcludeTerminal(t *testing.T) {
	repo := &fakeReservationRepo{}
	uc := NewUseCase(repo, &fakeNotifier{}, 15, "ru", nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Now: scanNow})
	require.NoError(t, err)

	for _, call := range repo.startingCalls {
		assert.NotContains(t, call.statuses, domain.StatusCancelledByClient)
		assert.NotContains(t, call.statuses, domain.StatusCancelledByAdmin)
		assert.NotContains(t, call.statuses, domain.StatusCompleted)
		assert.Contains(t, call.statuses, domain.StatusConfirmed)
	}
}

func TestExecute_SendFailureIsSwallowed(t *testing.T) {
	repo := &fakeReservationRepo{
		starting: map[time.Time][]*domain.Reservation{
			scanNow.Add(24 * time.Hour): {reservation(1, 10), reservation(2, 11)},
		},
	}
	n := &fakeNotifier{failFor: map[int64]bool{10: true}}
	uc := NewUseCase(repo, n, 15, "ru", nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Now: scanNow})
	require.NoError(t, err)

	// Сбой по одному клиенту не прерывает скан и не попадает в счетчик
	assert.Equal(t, 1, resp.Reminders24h)
}

func TestExecute_ZeroNow(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeNotifier{}, 15, "ru", nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
