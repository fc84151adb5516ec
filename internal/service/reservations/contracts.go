package reservations

import (
	"context"

	"github.com/velline/salon-booking-service/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByClient(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	ListByStaffWithFilter(ctx context.Context, filter domain.StaffReservationsFilter) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
