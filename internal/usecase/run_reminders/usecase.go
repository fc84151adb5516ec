package run_reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
)

// upcomingStatuses статусы, по которым имеет смысл напоминать о визите
var upcomingStatuses = []domain.ReservationStatus{
	domain.StatusPendingConfirmation,
	domain.StatusDepositPending,
	domain.StatusDepositPaid,
	domain.StatusConfirmed,
}

// UseCase use case прогона сканов напоминаний
//
// Вызывается cron-триггером. Идемпотентность на границе окна обеспечивает
// вызывающая сторона: движок сканирует ровно [смещение, смещение + окно)
// от переданного now, и при запуске не чаще раза в окно каждая запись
// попадает в скан один раз. Сбой отправки логируется и не прерывает скан.
type UseCase struct {
	reservationRepo ReservationRepository
	notifier        Notifier
	windowMinutes   int
	defaultLanguage string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	notifierClient Notifier,
	windowMinutes int,
	defaultLanguage string,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		notifier:        notifierClient,
		windowMinutes:   windowMinutes,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// Execute выполняет все три скана: напоминания за 24 часа, за 2 часа
// и запросы отзывов по завершенным визитам
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Now.IsZero() {
		return nil, fmt.Errorf("%w: now is required", ErrInvalidInput)
	}

	window := time.Duration(uc.windowMinutes) * time.Minute
	resp := &Response{}
	var err error

	resp.Reminders24h, err = uc.scanStarting(ctx, req.Now.Add(24*time.Hour), window, notifier.TemplateReminder24h)
	if err != nil {
		return nil, err
	}

	resp.Reminders2h, err = uc.scanStarting(ctx, req.Now.Add(2*time.Hour), window, notifier.TemplateReminder2h)
	if err != nil {
		return nil, err
	}

	resp.ReviewRequests, err = uc.scanCompleted(ctx, req.Now, window)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RunReminders: 24h=%d, 2h=%d, reviews=%d", resp.Reminders24h, resp.Reminders2h, resp.ReviewRequests)
	return resp, nil
}

// scanStarting отправляет напоминания по записям, начинающимся в [from, from+window)
func (uc *UseCase) scanStarting(ctx context.Context, from time.Time, window time.Duration, template notifier.TemplateType) (int, error) {
	reservations, err := uc.reservationRepo.ListStartingBetween(ctx, from, from.Add(window), upcomingStatuses)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to list reservations for %s: %v", ErrInternal, template, err)
	}

	sent := 0
	for _, res := range reservations {
		if uc.send(ctx, res, template) {
			sent++
		}
	}
	return sent, nil
}

// scanCompleted отправляет запросы отзывов по визитам, завершившимся
// в предыдущем окне [now-window, now)
func (uc *UseCase) scanCompleted(ctx context.Context, now time.Time, window time.Duration) (int, error) {
	completed := []domain.ReservationStatus{domain.StatusCompleted}

	reservations, err := uc.reservationRepo.ListEndingBetween(ctx, now.Add(-window), now, completed)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to list completed reservations: %v", ErrInternal, err)
	}

	sent := 0
	for _, res := range reservations {
		if uc.send(ctx, res, notifier.TemplateReviewRequest) {
			sent++
		}
	}
	return sent, nil
}

func (uc *UseCase) send(ctx context.Context, res *domain.Reservation, template notifier.TemplateType) bool {
	if uc.notifier == nil {
		return false
	}

	params := map[string]string{
		"reservation_id": fmt.Sprintf("%d", res.ID),
		"date":           res.Date.Format(domain.DateFormat),
		"start_time":     res.StartTime.String(),
	}

	if err := uc.notifier.Send(ctx, res.ClientID, template, uc.defaultLanguage, params); err != nil {
		uc.logger.Error("RunReminders: failed to send %s for reservation=%d: %v", template, res.ID, err)
		return false
	}
	return true
}
