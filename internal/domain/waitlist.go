package domain

import (
	"time"

	"github.com/velline/salon-booking-service/pkg/types"
)

// WaitlistStatus статус записи в листе ожидания
type WaitlistStatus string

const (
	WaitlistActive   WaitlistStatus = "active"
	WaitlistNotified WaitlistStatus = "notified"
	WaitlistBooked   WaitlistStatus = "booked"
	WaitlistExpired  WaitlistStatus = "expired"
)

// WaitlistEntry запись клиента в листе ожидания
// StaffID == nil означает "любой мастер"
// Продвижение выбирает самую старую (FIFO) активную запись,
// подходящую под освободившийся слот
type WaitlistEntry struct {
	ID           int64
	ClientID     int64
	ServiceID    int64
	StaffID      *int64
	DesiredDate  time.Time
	DesiredStart *types.TimeString
	DesiredEnd   *types.TimeString
	Status       WaitlistStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MatchesStaff returns true if the entry accepts the given staff member
func (e *WaitlistEntry) MatchesStaff(staffID int64) bool {
	return e.StaffID == nil || *e.StaffID == staffID
}
