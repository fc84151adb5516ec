package change_status

import (
	"context"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
	"github.com/velline/salon-booking-service/internal/usecase/promote_waitlist"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	// Cancel переводит запись в статус отмены с причиной и временем отмены
	Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason *string) error
}

// WaitlistPromoter интерфейс продвижения листа ожидания после отмены
type WaitlistPromoter interface {
	Execute(ctx context.Context, req *promote_waitlist.Request) (*promote_waitlist.Response, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс клиента сервиса уведомлений
type Notifier interface {
	Send(ctx context.Context, clientID int64, templateType notifier.TemplateType, language string, params map[string]string) error
}

// Metrics интерфейс счетчиков жизненного цикла
type Metrics interface {
	IncBookingCancelled()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
