package create_booking

import (
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/pkg/types"
)

// RequestItem одна строка бронирования: услуга с выбранным тарифом длительности
type RequestItem struct {
	ServiceID      int64
	DurationTierID int64
}

// Request модель запроса на создание бронирования
type Request struct {
	ClientID  int64
	StaffID   int64
	Date      time.Time        // Дата (без времени)
	StartTime types.TimeString // Начало в локальном времени салона
	Items     []RequestItem    // Минимум одна строка
	// PromoCode пустая строка - без промокода. Невалидный код не является
	// ошибкой: бронирование создается без скидки
	PromoCode string
}

// Response модель ответа на создание бронирования
type Response struct {
	ReservationID int64
	Status        domain.ReservationStatus
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	// TotalPrice сумма строк до скидки; к оплате TotalPrice - DiscountAmount
	TotalPrice     float64
	DiscountAmount float64
	PromoApplied   bool
	// RewardEarned true, если этим бронированием клиент замкнул цикл лояльности
	RewardEarned bool
}
