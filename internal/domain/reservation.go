package domain

import (
	"time"

	"github.com/velline/salon-booking-service/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPendingConfirmation ReservationStatus = "pending_confirmation"
	StatusDepositPending      ReservationStatus = "deposit_pending"
	StatusDepositPaid         ReservationStatus = "deposit_paid"
	StatusConfirmed           ReservationStatus = "confirmed"
	StatusInProgress          ReservationStatus = "in_progress"
	StatusCompleted           ReservationStatus = "completed"
	StatusCancelledByClient   ReservationStatus = "cancelled_by_client"
	StatusCancelledByAdmin    ReservationStatus = "cancelled_by_admin"
	StatusNoShow              ReservationStatus = "no_show"
)

// CancelledStatuses два терминальных статуса отмены
// Только они освобождают календарь мастера
var CancelledStatuses = []ReservationStatus{
	StatusCancelledByClient,
	StatusCancelledByAdmin,
}

// BlockingStatuses статусы, занимающие календарь мастера
var BlockingStatuses = []ReservationStatus{
	StatusPendingConfirmation,
	StatusDepositPending,
	StatusDepositPaid,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusNoShow,
}

// clientCancellableStatuses статусы, из которых клиент может отменить запись сам
var clientCancellableStatuses = map[ReservationStatus]bool{
	StatusPendingConfirmation: true,
	StatusConfirmed:           true,
	StatusDepositPending:      true,
}

// allowedTransitions таблица переходов статусов для обычного потока
// Администратор по живой записи не ограничен таблицей (см. Usecase
// change_status), но из отмененных статусов выходов нет ни для кого:
// отмена освободила интервал, и он мог быть занят снова
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPendingConfirmation: {StatusDepositPending, StatusConfirmed, StatusCancelledByClient, StatusCancelledByAdmin},
	StatusDepositPending:      {StatusDepositPaid, StatusConfirmed, StatusCancelledByClient, StatusCancelledByAdmin},
	StatusDepositPaid:         {StatusConfirmed, StatusCancelledByClient, StatusCancelledByAdmin},
	StatusConfirmed:           {StatusInProgress, StatusCompleted, StatusNoShow, StatusCancelledByClient, StatusCancelledByAdmin},
	StatusInProgress:          {StatusCompleted, StatusNoShow, StatusCancelledByClient, StatusCancelledByAdmin},
	StatusCompleted:           {},
	StatusCancelledByClient:   {},
	StatusCancelledByAdmin:    {},
	StatusNoShow:              {},
}

// ValidStatus returns true if s is a known reservation status
func ValidStatus(s ReservationStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether the standard lifecycle permits from -> to
func CanTransition(from, to ReservationStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsCancelledStatus returns true for the two cancelled variants
func IsCancelledStatus(s ReservationStatus) bool {
	return s == StatusCancelledByClient || s == StatusCancelledByAdmin
}

// IsTerminalStatus returns true if no further transitions are allowed
func IsTerminalStatus(s ReservationStatus) bool {
	return len(allowedTransitions[s]) == 0 && ValidStatus(s)
}

// Reservation is the central entity: a client booked with a staff member
// for a date and a [StartTime, EndTime) window.
// Reservations are never physically deleted; cancellation is a status.
type Reservation struct {
	ID       int64
	ClientID int64
	StaffID  int64
	Date     time.Time
	// StartTime/EndTime полуоткрытый интервал [start, end) в локальном времени салона
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    ReservationStatus

	TotalPrice     float64
	DiscountAmount float64
	PromoCodeID    *int64

	CancellationReason *string
	CancelledAt        *time.Time

	LineItems []ReservationLineItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReservationLineItem is one (service, duration tier) within a reservation.
// Created atomically with the parent and immutable thereafter.
type ReservationLineItem struct {
	ID             int64
	ReservationID  int64
	ServiceID      int64
	DurationTierID int64
	DurationMinutes int
	// Price = базовая цена тарифа + модификатор мастера, без нижней границы
	Price     float64
	SortOrder int
}

// IsBlocking returns true if the reservation occupies the staff calendar
func (r *Reservation) IsBlocking() bool {
	return !IsCancelledStatus(r.Status)
}

// CanBeCancelledByClient returns true if a client may cancel from the current status
func (r *Reservation) CanBeCancelledByClient() bool {
	return clientCancellableStatuses[r.Status]
}

// TotalDurationMinutes returns the sum of line item durations
func (r *Reservation) TotalDurationMinutes() int {
	total := 0
	for _, li := range r.LineItems {
		total += li.DurationMinutes
	}
	return total
}

// StaffReservationsFilter фильтр для выборки записей мастера
type StaffReservationsFilter struct {
	StaffID         int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *ReservationStatus
	IncludeCancelled bool
}
