package set_staff_schedule

import (
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/service/schedule/models"
)

// SetScheduleRequest HTTP request model
type SetScheduleRequest struct {
	Date      string `json:"date"` // "2025-06-10"
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
	IsDayOff  bool   `json:"isDayOff,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetScheduleRequest) ToServiceRequest(staffID int64, actor domain.Actor) (*models.SetWorkingHoursRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.SetWorkingHoursRequest{
		StaffID:   staffID,
		Actor:     actor,
		Date:      date,
		OpenTime:  r.OpenTime,
		CloseTime: r.CloseTime,
		IsDayOff:  r.IsDayOff,
	}, nil
}
