package cancel_reservation

import (
	changeStatus "github.com/velline/salon-booking-service/internal/usecase/change_status"
)

// CancelReservationRequest HTTP request model; тело опционально
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ReservationID    int64  `json:"reservationId"`
	Status           string `json:"status"`
	WaitlistPromoted bool   `json:"waitlistPromoted"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeStatus.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		ReservationID:    resp.ReservationID,
		Status:           string(resp.Status),
		WaitlistPromoted: resp.WaitlistPromoted,
	}
}
