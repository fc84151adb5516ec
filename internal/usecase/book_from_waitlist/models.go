package book_from_waitlist

import (
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/pkg/types"
)

// Request модель запроса на бронирование из листа ожидания
type Request struct {
	EntryID int64
	Actor   domain.Actor
	// StaffID мастер для бронирования; если в записи листа ожидания
	// мастер зафиксирован, должен совпадать с ним
	StaffID        int64
	Date           time.Time
	StartTime      types.TimeString
	DurationTierID int64
	PromoCode      string
}

// Response модель ответа на бронирование из листа ожидания
type Response struct {
	ReservationID  int64
	Status         domain.ReservationStatus
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	TotalPrice     float64
	DiscountAmount float64
}
