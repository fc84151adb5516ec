package change_status

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	reservationRepo "github.com/velline/salon-booking-service/internal/infra/storage/reservation"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
	"github.com/velline/salon-booking-service/internal/usecase/promote_waitlist"
)

// UseCase use case смены статуса записи
//
// Правила доступа:
//   - клиент может только отменить СВОЮ запись (cancelled_by_client),
//     и только из статусов, допускающих самостоятельную отмену;
//   - staff и admin могут выполнять любые переходы по живой записи, но
//     completed и no_show по дате в будущем - ошибка вызывающей стороны;
//   - из отмененных статусов выходов нет ни для кого: отмена освободила
//     интервал, он мог быть перебронирован или обещан листу ожидания,
//     и возврат в блокирующий статус обошел бы проверку конфликтов.
//
// Запрос на уже установленный статус - no-op с успешным ответом:
// повторная доставка HTTP запроса не должна превращаться в ошибку.
type UseCase struct {
	reservationRepo  ReservationRepository
	waitlistPromoter WaitlistPromoter
	txManager        TxManager
	notifier         Notifier
	metrics          Metrics
	defaultLanguage  string
	logger           Logger

	now func() time.Time
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	waitlistPromoter WaitlistPromoter,
	txManager TxManager,
	notifierClient Notifier,
	metrics Metrics,
	defaultLanguage string,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:  reservationRepo,
		waitlistPromoter: waitlistPromoter,
		txManager:        txManager,
		notifier:         notifierClient,
		metrics:          metrics,
		defaultLanguage:  defaultLanguage,
		logger:           logger,
		now:              time.Now,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeStatus: reservation=%d, actor=%d (%s), new status=%s",
		req.ReservationID, req.Actor.ID, req.Actor.Role, req.NewStatus)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if !domain.ValidStatus(req.NewStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.NewStatus)
	}

	var (
		res     *domain.Reservation
		changed bool
	)

	// 2. Чтение, проверка прав и обновление атомарны
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		res, err = uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2.1. Права инициатора и допустимость перехода
		// Проверяются до идемпотентного выхода: повтор запроса чужим
		// инициатором - ошибка доступа, а не тихий успех
		if err := uc.authorize(req.Actor, res, req.NewStatus); err != nil {
			return err
		}

		// 2.2. Идемпотентность: статус уже установлен
		if res.Status == req.NewStatus {
			return nil
		}

		// 2.3. Обновление; отмена дополнительно фиксирует причину и время
		if domain.IsCancelledStatus(req.NewStatus) {
			if err := uc.reservationRepo.Cancel(txCtx, res.ID, req.NewStatus, req.Reason); err != nil {
				return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
			}
		} else {
			if err := uc.reservationRepo.UpdateStatus(txCtx, res.ID, req.NewStatus); err != nil {
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}
		}
		changed = true
		return nil
	})
	if err != nil {
		uc.logger.Warn("ChangeStatus: reservation=%d rejected: %v", req.ReservationID, err)
		return nil, err
	}

	if !changed {
		uc.logger.Info("ChangeStatus: reservation=%d already in status %s", res.ID, req.NewStatus)
		return &Response{ReservationID: res.ID, Status: res.Status, Changed: false}, nil
	}

	uc.logger.Info("ChangeStatus: reservation=%d moved %s -> %s", res.ID, res.Status, req.NewStatus)

	waitlistPromoted := false
	if domain.IsCancelledStatus(req.NewStatus) {
		uc.metrics.IncBookingCancelled()
		waitlistPromoted = uc.promoteWaitlist(ctx, res)
		uc.notifyCancelledAsync(res)
	}

	return &Response{
		ReservationID:    res.ID,
		Status:           req.NewStatus,
		Changed:          true,
		WaitlistPromoted: waitlistPromoted,
	}, nil
}

// authorize проверяет, что инициатору разрешен переход res.Status -> newStatus
// Запрос текущего статуса пропускается: Execute превратит его в no-op
func (uc *UseCase) authorize(actor domain.Actor, res *domain.Reservation, newStatus domain.ReservationStatus) error {
	if actor.Role == domain.RoleClient {
		// Клиент может только отменить свою запись
		if actor.ID != res.ClientID {
			return ErrForbidden
		}
		if newStatus == res.Status {
			return nil
		}
		if newStatus != domain.StatusCancelledByClient {
			return ErrForbidden
		}
		if !domain.CanTransition(res.Status, newStatus) {
			return fmt.Errorf("%w: no transition from %s", ErrInvalidTransition, res.Status)
		}
		if !res.CanBeCancelledByClient() {
			return fmt.Errorf("%w: cannot cancel from status %s", ErrInvalidTransition, res.Status)
		}
		return nil
	}

	if !actor.IsPrivileged() {
		return ErrForbidden
	}
	if newStatus == res.Status {
		return nil
	}

	// Расширенные полномочия действуют только по живой записи: таблица
	// переходов не дает выходов из отмененных статусов, и администратор
	// их не открывает - интервал уже освобожден и мог быть занят снова
	if domain.IsCancelledStatus(res.Status) && !domain.CanTransition(res.Status, newStatus) {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, res.Status)
	}

	// Завершить или отметить неявку можно только по наступившей дате
	if newStatus == domain.StatusCompleted || newStatus == domain.StatusNoShow {
		if uc.isFutureDate(res.Date) {
			return ErrFutureCompletion
		}
	}
	return nil
}

// isFutureDate возвращает true, если дата записи строго позже сегодняшней
func (uc *UseCase) isFutureDate(date time.Time) bool {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, date.Location())
	return date.After(today)
}

// promoteWaitlist продвигает лист ожидания после отмены
// Сбой продвижения не откатывает отмену: слот уже освобожден
func (uc *UseCase) promoteWaitlist(ctx context.Context, res *domain.Reservation) bool {
	if uc.waitlistPromoter == nil {
		return false
	}

	serviceIDs := make([]int64, 0, len(res.LineItems))
	for _, li := range res.LineItems {
		serviceIDs = append(serviceIDs, li.ServiceID)
	}
	if len(serviceIDs) == 0 {
		return false
	}

	resp, err := uc.waitlistPromoter.Execute(ctx, &promote_waitlist.Request{
		StaffID:    res.StaffID,
		Date:       res.Date,
		FreedStart: res.StartTime,
		FreedEnd:   res.EndTime,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		uc.logger.Error("ChangeStatus: waitlist promotion failed for reservation=%d: %v", res.ID, err)
		return false
	}
	return resp.Promoted
}

// notifyCancelledAsync уведомляет клиента об отмене записи
func (uc *UseCase) notifyCancelledAsync(res *domain.Reservation) {
	if uc.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		params := map[string]string{
			"reservation_id": fmt.Sprintf("%d", res.ID),
			"date":           res.Date.Format(domain.DateFormat),
			"start_time":     res.StartTime.String(),
		}
		err := uc.notifier.Send(ctx, res.ClientID, notifier.TemplateBookingCancelled, uc.defaultLanguage, params)
		if err != nil {
			uc.logger.Error("ChangeStatus: failed to enqueue cancellation notification for reservation=%d: %v", res.ID, err)
		}
	}()
}
