package run_reminders

import (
	"context"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	// ListStartingBetween записи в указанных статусах, начинающиеся в [from, to)
	ListStartingBetween(ctx context.Context, from, to time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
	// ListEndingBetween записи в указанных статусах, заканчивающиеся в [from, to)
	ListEndingBetween(ctx context.Context, from, to time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error)
}

// Notifier интерфейс клиента сервиса уведомлений
type Notifier interface {
	Send(ctx context.Context, clientID int64, templateType notifier.TemplateType, language string, params map[string]string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
