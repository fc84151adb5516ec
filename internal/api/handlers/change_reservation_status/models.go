package change_reservation_status

import (
	changeStatus "github.com/velline/salon-booking-service/internal/usecase/change_status"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// ChangeStatusResponse HTTP response model
type ChangeStatusResponse struct {
	ReservationID    int64  `json:"reservationId"`
	Status           string `json:"status"`
	Changed          bool   `json:"changed"`
	WaitlistPromoted bool   `json:"waitlistPromoted"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response) *ChangeStatusResponse {
	return &ChangeStatusResponse{
		ReservationID:    resp.ReservationID,
		Status:           string(resp.Status),
		Changed:          resp.Changed,
		WaitlistPromoted: resp.WaitlistPromoted,
	}
}
