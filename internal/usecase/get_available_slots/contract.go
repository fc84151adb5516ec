package get_available_slots

import (
	"context"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	// GetBlockingByStaffAndDate получает записи мастера на дату в блокирующем статусе
	GetBlockingByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Reservation, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) (*domain.StaffWorkingHours, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetStaff(ctx context.Context, staffID int64) (*domain.Staff, error)
	GetDurationTier(ctx context.Context, tierID int64) (*domain.ServiceDurationTier, error)
	GetOffering(ctx context.Context, staffID, serviceID int64) (*domain.StaffServiceOffering, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
