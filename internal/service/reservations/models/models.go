package models

import (
	"errors"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// ListClientReservationsRequest запрос на получение записей клиента
type ListClientReservationsRequest struct {
	ClientID int64
	Actor    domain.Actor
	// Status опциональный фильтр по статусу
	Status *string
}

// ListStaffReservationsRequest запрос на получение календаря мастера
type ListStaffReservationsRequest struct {
	StaffID int64
	Actor   domain.Actor
	// StartDate/EndDate период; одинаковые даты - календарь на день
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *string
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListStaffReservationsRequest) ToDomainFilter() (domain.StaffReservationsFilter, error) {
	filter := domain.StaffReservationsFilter{
		StaffID:          r.StaffID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// LineItemResponse строка записи
type LineItemResponse struct {
	ServiceID       int64   `json:"serviceId"`
	DurationTierID  int64   `json:"durationTierId"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	SortOrder       int     `json:"sortOrder"`
}

// ReservationResponse ответ с данными записи
type ReservationResponse struct {
	ID        int64  `json:"id"`
	ClientID  int64  `json:"clientId"`
	StaffID   int64  `json:"staffId"`
	Date      string `json:"date"`      // "2025-06-10"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:30"
	Status    string `json:"status"`

	TotalPrice     float64 `json:"totalPrice"`
	DiscountAmount float64 `json:"discountAmount"`
	PromoCodeID    *int64  `json:"promoCodeId,omitempty"`

	LineItems []LineItemResponse `json:"lineItems,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком записей
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		ClientID:           r.ClientID,
		StaffID:            r.StaffID,
		Date:               r.Date.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		Status:             string(r.Status),
		TotalPrice:         r.TotalPrice,
		DiscountAmount:     r.DiscountAmount,
		PromoCodeID:        r.PromoCodeID,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if len(r.LineItems) > 0 {
		resp.LineItems = make([]LineItemResponse, len(r.LineItems))
		for i, li := range r.LineItems {
			resp.LineItems[i] = LineItemResponse{
				ServiceID:       li.ServiceID,
				DurationTierID:  li.DurationTierID,
				DurationMinutes: li.DurationMinutes,
				Price:           li.Price,
				SortOrder:       li.SortOrder,
			}
		}
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if converted := FromDomainReservation(r); converted != nil {
			resp.Reservations = append(resp.Reservations, *converted)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
