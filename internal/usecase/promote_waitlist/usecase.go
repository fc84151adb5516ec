package promote_waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	waitlistRepo "github.com/velline/salon-booking-service/internal/infra/storage/waitlist"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
)

// UseCase use case продвижения листа ожидания
//
// Вызывается после отмены записи. На одну отмену продвигается не более
// одной записи листа ожидания: клиент переводится в notified и получает
// уведомление с приглашением забронировать освободившийся слот.
// Слот за клиентом НЕ резервируется - бронирование из листа ожидания
// проходит обычную проверку конфликтов.
type UseCase struct {
	waitlistRepo    WaitlistRepository
	txManager       TxManager
	notifier        Notifier
	metrics         Metrics
	defaultLanguage string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	waitlistRepo WaitlistRepository,
	txManager TxManager,
	notifierClient Notifier,
	metrics Metrics,
	defaultLanguage string,
	logger Logger,
) *UseCase {
	return &UseCase{
		waitlistRepo:    waitlistRepo,
		txManager:       txManager,
		notifier:        notifierClient,
		metrics:         metrics,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// Execute выполняет use case продвижения листа ожидания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.StaffID <= 0 || req.Date.IsZero() || len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: staffID, date and serviceIDs are required", ErrInvalidInput)
	}
	if err := req.FreedStart.Validate(); err != nil {
		return nil, fmt.Errorf("%w: freed start: %v", ErrInvalidInput, err)
	}
	if err := req.FreedEnd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: freed end: %v", ErrInvalidInput, err)
	}

	var promoted *domain.WaitlistEntry

	// Поиск и перевод в notified атомарны: конкурентная отмена не должна
	// продвинуть ту же запись дважды
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, serviceID := range req.ServiceIDs {
			entry, err := uc.waitlistRepo.FindOldestActiveMatch(txCtx, req.StaffID, serviceID, req.Date)
			if err != nil {
				if errors.Is(err, waitlistRepo.ErrNoMatch) {
					continue
				}
				return fmt.Errorf("%w: failed to find waitlist match: %v", ErrInternal, err)
			}

			if err := uc.waitlistRepo.UpdateStatus(txCtx, entry.ID, domain.WaitlistNotified); err != nil {
				return fmt.Errorf("%w: failed to update waitlist entry: %v", ErrInternal, err)
			}
			promoted = entry
			return nil
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("PromoteWaitlist: failed: %v", err)
		return nil, err
	}

	if promoted == nil {
		uc.logger.Info("PromoteWaitlist: no active match for staff=%d, date=%s",
			req.StaffID, req.Date.Format(domain.DateFormat))
		return &Response{Promoted: false}, nil
	}

	uc.metrics.IncWaitlistPromoted()
	uc.logger.Info("PromoteWaitlist: entry id=%d promoted to notified, client=%d", promoted.ID, promoted.ClientID)

	uc.notifyAsync(promoted, req)

	return &Response{
		Promoted: true,
		EntryID:  promoted.ID,
		ClientID: promoted.ClientID,
	}, nil
}

// notifyAsync отправляет приглашение забронировать освободившийся слот
// Fire-and-forget: статус notified уже зафиксирован
func (uc *UseCase) notifyAsync(entry *domain.WaitlistEntry, req *Request) {
	if uc.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Приглашение называет услугу, мастера, дату и освободившийся
		// интервал: клиенту есть что бронировать
		params := map[string]string{
			"waitlist_entry_id": fmt.Sprintf("%d", entry.ID),
			"service_id":        fmt.Sprintf("%d", entry.ServiceID),
			"staff_id":          fmt.Sprintf("%d", req.StaffID),
			"date":              req.Date.Format(domain.DateFormat),
			"start_time":        req.FreedStart.String(),
			"end_time":          req.FreedEnd.String(),
		}
		err := uc.notifier.Send(ctx, entry.ClientID, notifier.TemplateWaitlistAvailable, uc.defaultLanguage, params)
		if err != nil {
			uc.logger.Error("PromoteWaitlist: failed to enqueue notification for entry id=%d: %v", entry.ID, err)
		}
	}()
}
