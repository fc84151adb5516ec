package get_available_slots

import (
	"github.com/velline/salon-booking-service/internal/domain"
	getAvailableSlots "github.com/velline/salon-booking-service/internal/usecase/get_available_slots"
)

// SlotResponse один доступный слот
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	StaffID         int64          `json:"staffId"`
	ServiceID       int64          `json:"serviceId"`
	Date            string         `json:"date"` // "2025-06-10"
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
		}
	}

	return &SlotsResponse{
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
