package promote_waitlist

import (
	"context"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	// FindOldestActiveMatch находит самую старую активную запись под
	// освободившийся слот; внутри транзакции блокирует строку
	FindOldestActiveMatch(ctx context.Context, staffID, serviceID int64, freedDate time.Time) (*domain.WaitlistEntry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.WaitlistStatus) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс клиента сервиса уведомлений
type Notifier interface {
	Send(ctx context.Context, clientID int64, templateType notifier.TemplateType, language string, params map[string]string) error
}

// Metrics интерфейс счетчиков листа ожидания
type Metrics interface {
	IncWaitlistPromoted()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
