package book_from_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/velline/salon-booking-service/internal/domain"
	waitlistRepo "github.com/velline/salon-booking-service/internal/infra/storage/waitlist"
	"github.com/velline/salon-booking-service/internal/usecase/create_booking"
)

// UseCase use case бронирования из листа ожидания
//
// Приглашение (статус notified) не резервирует слот: за время между
// уведомлением и бронированием слот мог занять кто угодно. Бронирование
// делегируется обычному коммиту; конфликт переводится в
// ErrSlotNoLongerAvailable, а запись листа ожидания остается в notified -
// клиент может выбрать другой слот по тому же приглашению.
type UseCase struct {
	waitlistRepo   WaitlistRepository
	bookingCreator BookingCreator
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(waitlistRepo WaitlistRepository, bookingCreator BookingCreator, logger Logger) *UseCase {
	return &UseCase{
		waitlistRepo:   waitlistRepo,
		bookingCreator: bookingCreator,
		logger:         logger,
	}
}

// Execute выполняет use case бронирования из листа ожидания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookFromWaitlist: entry=%d, actor=%d, staff=%d, date=%s, start=%s",
		req.EntryID, req.Actor.ID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if req.EntryID <= 0 {
		return nil, fmt.Errorf("%w: entryID must be positive", ErrInvalidInput)
	}

	// 2. Запись листа ожидания: существует, приглашена, принадлежит инициатору
	entry, err := uc.waitlistRepo.GetByID(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("%w: failed to get waitlist entry: %v", ErrInternal, err)
	}

	if !req.Actor.IsPrivileged() && req.Actor.ID != entry.ClientID {
		uc.logger.Warn("BookFromWaitlist: entry=%d belongs to client=%d, actor=%d", entry.ID, entry.ClientID, req.Actor.ID)
		return nil, ErrForbidden
	}

	if entry.Status != domain.WaitlistNotified {
		uc.logger.Warn("BookFromWaitlist: entry=%d is in status %s", entry.ID, entry.Status)
		return nil, ErrEntryNotPromoted
	}

	if !entry.MatchesStaff(req.StaffID) {
		return nil, fmt.Errorf("%w: entry is bound to staff=%d", ErrInvalidInput, *entry.StaffID)
	}

	// 3. Обычный атомарный коммит с проверкой конфликтов
	booking, err := uc.bookingCreator.Execute(ctx, &create_booking.Request{
		ClientID:  entry.ClientID,
		StaffID:   req.StaffID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Items: []create_booking.RequestItem{
			{ServiceID: entry.ServiceID, DurationTierID: req.DurationTierID},
		},
		PromoCode: req.PromoCode,
	})
	if err != nil {
		// Слот успели занять; приглашение остается действительным
		if errors.Is(err, create_booking.ErrSlotNotAvailable) {
			uc.logger.Warn("BookFromWaitlist: slot taken before entry=%d booked it", entry.ID)
			return nil, ErrSlotNoLongerAvailable
		}
		return nil, err
	}

	// 4. Приглашение использовано
	// Бронирование уже зафиксировано: сбой отметки booked логируется,
	// но не отменяет созданную запись
	if err := uc.waitlistRepo.UpdateStatus(ctx, entry.ID, domain.WaitlistBooked); err != nil {
		uc.logger.Error("BookFromWaitlist: failed to mark entry=%d as booked: %v", entry.ID, err)
	}

	uc.logger.Info("BookFromWaitlist: entry=%d booked as reservation=%d", entry.ID, booking.ReservationID)

	return &Response{
		ReservationID:  booking.ReservationID,
		Status:         booking.Status,
		Date:           booking.Date,
		StartTime:      booking.StartTime,
		EndTime:        booking.EndTime,
		TotalPrice:     booking.TotalPrice,
		DiscountAmount: booking.DiscountAmount,
	}, nil
}
