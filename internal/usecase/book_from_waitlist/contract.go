package book_from_waitlist

import (
	"context"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/usecase/create_booking"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.WaitlistStatus) error
}

// BookingCreator интерфейс создания бронирования
// Бронирование из листа ожидания проходит тот же атомарный коммит
// с авторитетной проверкой конфликтов, что и обычное
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
