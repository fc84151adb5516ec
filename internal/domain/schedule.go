package domain

import (
	"time"

	"github.com/velline/salon-booking-service/pkg/types"
)

// StaffWorkingHours working-hours record, one per (staff member, calendar date).
// Created/overwritten by administrative schedule-setting.
// If IsDayOff is true, OpenTime/CloseTime are ignored and the date
// produces zero slots.
type StaffWorkingHours struct {
	ID        int64
	StaffID   int64
	Date      time.Time
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsDayOff  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWorkable returns true if slots may be generated for this record
func (w *StaffWorkingHours) IsWorkable() bool {
	return !w.IsDayOff && !w.OpenTime.IsZero() && !w.CloseTime.IsZero() && w.OpenTime.IsBefore(w.CloseTime)
}
