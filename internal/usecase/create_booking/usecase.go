package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/infra/storage/promo"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
)

// Config настройки поведения коммита бронирования
type Config struct {
	LoyaltyEnabled  bool
	StampsPerReward int
	// DefaultLanguage язык уведомлений
	DefaultLanguage string
}

// UseCase use case создания бронирования
//
// Коммит атомарен: запись, её строки, инкремент промокода и штамп
// лояльности создаются в одной SERIALIZABLE транзакции. Авторитетная
// проверка конфликтов выполняется внутри транзакции по свежим данным -
// выдача слотов к этому моменту могла устареть.
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	promoRepo       PromoRepository
	loyaltyRepo     LoyaltyRepository
	txManager       TxManager
	notifier        Notifier
	metrics         Metrics
	cfg             Config
	logger          Logger

	now func() time.Time
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	promoRepo PromoRepository,
	loyaltyRepo LoyaltyRepository,
	txManager TxManager,
	notifierClient Notifier,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		promoRepo:       promoRepo,
		loyaltyRepo:     loyaltyRepo,
		txManager:       txManager,
		notifier:        notifierClient,
		metrics:         metrics,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, staff=%d, date=%s, start=%s, items=%d",
		req.ClientID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Мастер существует и активен
	if err := uc.checkActiveStaff(ctx, req.StaffID); err != nil {
		return nil, err
	}

	// 3. Строки бронирования: тарифы, цены, суммарная длительность
	// Каталог читается вне транзакции: он управляется внешней админкой
	// и меняется редко
	lineItems, totalPrice, totalDuration, err := uc.buildLineItems(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Конец интервала; выход за полночь - некорректный запрос
	endTime, err := req.StartTime.AddMinutes(totalDuration)
	if err != nil {
		uc.logger.Warn("CreateBooking: interval exceeds day boundary: start=%s, duration=%d", req.StartTime, totalDuration)
		return nil, fmt.Errorf("%w: booking does not fit in a single day", ErrInvalidInput)
	}

	startMinutes, err := req.StartTime.ToMinutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	endMinutes := startMinutes + totalDuration

	var (
		created      *domain.Reservation
		promoApplied bool
		rewardEarned bool
	)

	// 5. Атомарный коммит
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Авторитетная проверка конфликтов по заблокированным строкам
		blocking, err := uc.reservationRepo.GetBlockingByStaffAndDate(txCtx, req.StaffID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}
		busy, err := domain.BusyIntervalsFromReservations(blocking)
		if err != nil {
			return fmt.Errorf("%w: failed to build busy intervals: %v", ErrInternal, err)
		}
		if domain.HasConflict(startMinutes, endMinutes, busy) {
			return ErrSlotNotAvailable
		}

		// 5.2. Промокод: скидка и инкремент счетчика в той же транзакции
		promoCodeID, discount, applied, err := uc.resolvePromo(txCtx, req.PromoCode, totalPrice)
		if err != nil {
			return err
		}
		promoApplied = applied

		// 5.3. Запись со строками
		res := &domain.Reservation{
			ClientID:       req.ClientID,
			StaffID:        req.StaffID,
			Date:           req.Date,
			StartTime:      req.StartTime,
			EndTime:        endTime,
			Status:         domain.StatusPendingConfirmation,
			TotalPrice:     totalPrice,
			DiscountAmount: discount,
			PromoCodeID:    promoCodeID,
			LineItems:      lineItems,
		}
		created, err = uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 5.4. Штамп лояльности
		if uc.cfg.LoyaltyEnabled {
			rewardEarned, err = uc.createLoyaltyStamp(txCtx, created)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: slot taken: staff=%d, date=%s, start=%s",
				req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)
			uc.metrics.IncBookingConflict()
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("CreateBooking: commit failed: %v", err)
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: created reservation id=%d, total=%.2f, discount=%.2f",
		created.ID, created.TotalPrice, created.DiscountAmount)

	// 6. Уведомление после коммита; сбой брокера не влияет на результат
	uc.notifyAsync(created)

	return &Response{
		ReservationID:  created.ID,
		Status:         created.Status,
		Date:           created.Date,
		StartTime:      created.StartTime,
		EndTime:        created.EndTime,
		TotalPrice:     created.TotalPrice,
		DiscountAmount: created.DiscountAmount,
		PromoApplied:   promoApplied,
		RewardEarned:   rewardEarned,
	}, nil
}

func (uc *UseCase) checkActiveStaff(ctx context.Context, staffID int64) error {
	staff, err := uc.catalogRepo.GetStaff(ctx, staffID)
	if err != nil {
		uc.logger.Warn("CreateBooking: staff id=%d not found: %v", staffID, err)
		return ErrStaffNotFound
	}
	if !staff.IsActive {
		uc.logger.Warn("CreateBooking: staff id=%d is inactive", staffID)
		return ErrStaffNotFound
	}
	return nil
}

// buildLineItems валидирует каждую строку запроса и считает цену
// Цена строки = базовая цена тарифа + модификатор мастера, без нижней границы
func (uc *UseCase) buildLineItems(ctx context.Context, req *Request) ([]domain.ReservationLineItem, float64, int, error) {
	lineItems := make([]domain.ReservationLineItem, 0, len(req.Items))
	var totalPrice float64
	var totalDuration int

	for i, item := range req.Items {
		tier, err := uc.catalogRepo.GetDurationTier(ctx, item.DurationTierID)
		if err != nil {
			uc.logger.Warn("CreateBooking: duration tier id=%d not found: %v", item.DurationTierID, err)
			return nil, 0, 0, ErrInvalidServiceDuration
		}
		if !tier.BelongsTo(item.ServiceID) || !tier.IsActive {
			uc.logger.Warn("CreateBooking: tier id=%d does not belong to service id=%d or inactive",
				item.DurationTierID, item.ServiceID)
			return nil, 0, 0, ErrInvalidServiceDuration
		}

		offering, err := uc.catalogRepo.GetOffering(ctx, req.StaffID, item.ServiceID)
		if err != nil {
			uc.logger.Warn("CreateBooking: staff=%d does not offer service=%d", req.StaffID, item.ServiceID)
			return nil, 0, 0, ErrServiceNotOffered
		}

		lineItems = append(lineItems, domain.ReservationLineItem{
			ServiceID:       item.ServiceID,
			DurationTierID:  item.DurationTierID,
			DurationMinutes: tier.DurationMinutes,
			Price:           offering.LinePrice(tier),
			SortOrder:       i,
		})
		totalPrice += offering.LinePrice(tier)
		totalDuration += tier.DurationMinutes
	}

	return lineItems, totalPrice, totalDuration, nil
}

// resolvePromo применяет промокод к сумме заказа
// Невалидный, неизвестный или исчерпанный код НЕ проваливает бронирование:
// коммит продолжается без скидки. Поведение сохранено намеренно -
// клиенты привыкли, что запись проходит даже с опечаткой в коде.
func (uc *UseCase) resolvePromo(ctx context.Context, code string, totalPrice float64) (*int64, float64, bool, error) {
	if code == "" {
		return nil, 0, false, nil
	}

	p, err := uc.promoRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, promo.ErrPromoNotFound) {
			uc.logger.Warn("CreateBooking: promo code %q not found, proceeding without discount", code)
			return nil, 0, false, nil
		}
		return nil, 0, false, fmt.Errorf("%w: failed to get promo code: %v", ErrInternal, err)
	}

	if !p.IsApplicable(totalPrice, uc.now()) {
		uc.logger.Warn("CreateBooking: promo code %q not applicable, proceeding without discount", code)
		return nil, 0, false, nil
	}

	if err := uc.promoRepo.IncrementUses(ctx, p.ID); err != nil {
		// Лимит исчерпан конкурентной транзакцией между чтением и инкрементом
		if errors.Is(err, promo.ErrUsesExhausted) {
			uc.logger.Warn("CreateBooking: promo code %q exhausted concurrently, proceeding without discount", code)
			return nil, 0, false, nil
		}
		return nil, 0, false, fmt.Errorf("%w: failed to increment promo uses: %v", ErrInternal, err)
	}

	return &p.ID, p.Discount(totalPrice), true, nil
}

// createLoyaltyStamp создает штамп лояльности в транзакции коммита
// Порядковый номер = количество штампов клиента + 1
func (uc *UseCase) createLoyaltyStamp(ctx context.Context, res *domain.Reservation) (bool, error) {
	count, err := uc.loyaltyRepo.CountByClient(ctx, res.ClientID)
	if err != nil {
		return false, fmt.Errorf("%w: failed to count loyalty stamps: %v", ErrInternal, err)
	}

	stamp := &domain.LoyaltyStamp{
		ClientID:       res.ClientID,
		ReservationID:  res.ID,
		SequenceNumber: count + 1,
		IsReward:       domain.CompletesReward(count+1, uc.cfg.StampsPerReward),
	}
	if _, err := uc.loyaltyRepo.Create(ctx, stamp); err != nil {
		return false, fmt.Errorf("%w: failed to create loyalty stamp: %v", ErrInternal, err)
	}
	return stamp.IsReward, nil
}

// notifyAsync отправляет уведомление о созданном бронировании
// Fire-and-forget: коммит уже состоялся, ошибка доставки только логируется
func (uc *UseCase) notifyAsync(res *domain.Reservation) {
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
		err := uc.notifier.Send(ctx, res.ClientID, notifier.TemplateBookingCreated, uc.cfg.DefaultLanguage, params)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to enqueue notification for reservation id=%d: %v", res.ID, err)
		}
	}()
}
