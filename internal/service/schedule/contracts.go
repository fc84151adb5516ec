package schedule

import (
	"context"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) (*domain.StaffWorkingHours, error)
	Upsert(ctx context.Context, wh *domain.StaffWorkingHours) (*domain.StaffWorkingHours, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetStaff(ctx context.Context, staffID int64) (*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
