package models

import (
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/pkg/types"
)

// Request модели

// SetWorkingHoursRequest запрос на установку расписания мастера на дату
// Перезаписывает существующую запись (одна на мастера и дату)
type SetWorkingHoursRequest struct {
	StaffID   int64
	Actor     domain.Actor
	Date      time.Time
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"
	IsDayOff  bool   `json:"isDayOff"`
}

// ToDomain конвертирует request в domain модель с валидацией времени
// Для выходного дня open/close игнорируются
func (r *SetWorkingHoursRequest) ToDomain() (*domain.StaffWorkingHours, error) {
	wh := &domain.StaffWorkingHours{
		StaffID:  r.StaffID,
		Date:     r.Date,
		IsDayOff: r.IsDayOff,
	}

	if r.IsDayOff {
		return wh, nil
	}

	openTime, err := types.NewTimeStringFromString(r.OpenTime)
	if err != nil {
		return nil, err
	}
	closeTime, err := types.NewTimeStringFromString(r.CloseTime)
	if err != nil {
		return nil, err
	}
	if !openTime.IsBefore(closeTime) {
		return nil, types.ErrInvalidTimeFormat
	}

	wh.OpenTime = openTime
	wh.CloseTime = closeTime
	return wh, nil
}

// Response модели

// WorkingHoursResponse ответ с расписанием мастера на дату
type WorkingHoursResponse struct {
	StaffID   int64  `json:"staffId"`
	Date      string `json:"date"` // "2025-06-10"
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
	IsDayOff  bool   `json:"isDayOff"`
}

// FromDomainWorkingHours конвертирует domain модель в DTO
func FromDomainWorkingHours(wh *domain.StaffWorkingHours) *WorkingHoursResponse {
	if wh == nil {
		return nil
	}
	return &WorkingHoursResponse{
		StaffID:   wh.StaffID,
		Date:      wh.Date.Format(domain.DateFormat),
		OpenTime:  wh.OpenTime.String(),
		CloseTime: wh.CloseTime.String(),
		IsDayOff:  wh.IsDayOff,
	}
}
