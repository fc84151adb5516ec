package book_from_waitlist

import (
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	bookFromWaitlist "github.com/velline/salon-booking-service/internal/usecase/book_from_waitlist"
	"github.com/velline/salon-booking-service/pkg/types"
)

// BookFromWaitlistRequest HTTP request model
type BookFromWaitlistRequest struct {
	StaffID        int64  `json:"staffId"`
	Date           string `json:"date"`      // "2025-06-10"
	StartTime      string `json:"startTime"` // "10:00"
	DurationTierID int64  `json:"durationTierId"`
	PromoCode      string `json:"promoCode,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ReservationID  int64   `json:"reservationId"`
	Status         string  `json:"status"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	TotalPrice     float64 `json:"totalPrice"`
	DiscountAmount float64 `json:"discountAmount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookFromWaitlistRequest) ToUseCaseRequest(entryID int64, actor domain.Actor) (*bookFromWaitlist.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookFromWaitlist.Request{
		EntryID:        entryID,
		Actor:          actor,
		StaffID:        r.StaffID,
		Date:           date,
		StartTime:      startTime,
		DurationTierID: r.DurationTierID,
		PromoCode:      r.PromoCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookFromWaitlist.Response) *BookingResponse {
	return &BookingResponse{
		ReservationID:  resp.ReservationID,
		Status:         string(resp.Status),
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		TotalPrice:     resp.TotalPrice,
		DiscountAmount: resp.DiscountAmount,
	}
}
