package set_staff_schedule

import (
	"context"

	"github.com/velline/salon-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	SetWorkingHours(ctx context.Context, req *models.SetWorkingHoursRequest) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
