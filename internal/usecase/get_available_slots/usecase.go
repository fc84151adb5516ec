package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/velline/salon-booking-service/internal/domain"
	scheduleRepo "github.com/velline/salon-booking-service/internal/infra/storage/schedule"
)

// UseCase use case для получения доступных слотов мастера
// Выдача слотов - read-only и заведомо может устареть к моменту коммита;
// авторитетная проверка конфликтов выполняется заново при создании записи
type UseCase struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	catalogRepo     CatalogRepository
	bufferMinutes   int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	bufferMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		catalogRepo:     catalogRepo,
		bufferMinutes:   bufferMinutes,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: staff=%d, service=%d, tier=%d, date=%s",
		req.StaffID, req.ServiceID, req.DurationTierID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Мастер существует и активен
	staff, err := uc.getActiveStaff(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}

	// 3. Тариф принадлежит услуге и активен
	tier, err := uc.getValidTier(ctx, req.ServiceID, req.DurationTierID)
	if err != nil {
		return nil, err
	}

	// 4. Мастер оказывает услугу
	if _, err := uc.catalogRepo.GetOffering(ctx, req.StaffID, req.ServiceID); err != nil {
		uc.logger.Warn("GetAvailableSlots: staff=%d does not offer service=%d", req.StaffID, req.ServiceID)
		return nil, ErrServiceNotOffered
	}

	emptyResponse := &Response{
		Date:            req.Date,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		DurationMinutes: tier.DurationMinutes,
		Slots:           []domain.AvailableSlot{},
	}

	// 5. Рабочие часы на дату: нет записи или выходной - пустой список,
	// расписание по умолчанию никогда не выдумывается
	workingHours, err := uc.scheduleRepo.GetByStaffAndDate(ctx, req.StaffID, req.Date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			uc.logger.Info("GetAvailableSlots: no schedule for staff=%d on %s",
				req.StaffID, req.Date.Format(domain.DateFormat))
			return emptyResponse, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	if !workingHours.IsWorkable() {
		uc.logger.Info("GetAvailableSlots: staff=%d has a day off on %s",
			req.StaffID, req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 6. Занятые интервалы из блокирующих записей
	reservations, err := uc.reservationRepo.GetBlockingByStaffAndDate(ctx, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	busy, err := domain.BusyIntervalsFromReservations(reservations)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build busy intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to build busy intervals: %v", ErrInternal, err)
	}

	// 7. Генерация слотов
	workStart, err := workingHours.OpenTime.ToMinutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	workEnd, err := workingHours.CloseTime.ToMinutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	slots, err := generateSlots(workStart, workEnd, tier.DurationMinutes, uc.bufferMinutes, busy)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for staff=%d (%v), date=%s",
		len(slots), staff.ID, staff.Name.Get("en"), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		DurationMinutes: tier.DurationMinutes,
		Slots:           slots,
	}, nil
}

func (uc *UseCase) getActiveStaff(ctx context.Context, staffID int64) (*domain.Staff, error) {
	staff, err := uc.catalogRepo.GetStaff(ctx, staffID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: staff id=%d not found: %v", staffID, err)
		return nil, ErrStaffNotFound
	}
	if !staff.IsActive {
		uc.logger.Warn("GetAvailableSlots: staff id=%d is inactive", staffID)
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

func (uc *UseCase) getValidTier(ctx context.Context, serviceID, tierID int64) (*domain.ServiceDurationTier, error) {
	tier, err := uc.catalogRepo.GetDurationTier(ctx, tierID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: duration tier id=%d not found: %v", tierID, err)
		return nil, ErrInvalidServiceDuration
	}
	if !tier.BelongsTo(serviceID) || !tier.IsActive {
		uc.logger.Warn("GetAvailableSlots: tier id=%d does not belong to service id=%d or inactive", tierID, serviceID)
		return nil, ErrInvalidServiceDuration
	}
	return tier, nil
}
