package domain

import "github.com/velline/salon-booking-service/pkg/types"

// AvailableSlot represents a start time available for booking
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}
