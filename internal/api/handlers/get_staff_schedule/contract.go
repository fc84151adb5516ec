package get_staff_schedule

import (
	"context"
	"time"

	"github.com/velline/salon-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWorkingHours(ctx context.Context, staffID int64, date time.Time) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
