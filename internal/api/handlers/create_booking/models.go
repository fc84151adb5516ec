package create_booking

import (
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	createBooking "github.com/velline/salon-booking-service/internal/usecase/create_booking"
	"github.com/velline/salon-booking-service/pkg/types"
)

// ItemRequest одна строка бронирования
type ItemRequest struct {
	ServiceID      int64 `json:"serviceId"`
	DurationTierID int64 `json:"durationTierId"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StaffID   int64         `json:"staffId"`
	Date      string        `json:"date"`      // "2025-06-10"
	StartTime string        `json:"startTime"` // "10:00"
	Items     []ItemRequest `json:"items"`
	PromoCode string        `json:"promoCode,omitempty"`
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
	PromoApplied   bool    `json:"promoApplied"`
	RewardEarned   bool    `json:"rewardEarned"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// ClientID приходит из identity-контекста, а не из тела запроса
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	items := make([]createBooking.RequestItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = createBooking.RequestItem{
			ServiceID:      item.ServiceID,
			DurationTierID: item.DurationTierID,
		}
	}

	return &createBooking.Request{
		ClientID:  clientID,
		StaffID:   r.StaffID,
		Date:      date,
		StartTime: startTime,
		Items:     items,
		PromoCode: r.PromoCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ReservationID:  resp.ReservationID,
		Status:         string(resp.Status),
		Date:           resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		TotalPrice:     resp.TotalPrice,
		DiscountAmount: resp.DiscountAmount,
		PromoApplied:   resp.PromoApplied,
		RewardEarned:   resp.RewardEarned,
	}
}
