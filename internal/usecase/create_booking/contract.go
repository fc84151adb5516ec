package create_booking

import (
	"context"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	// Create создает запись вместе с её строками; вызывается только внутри транзакции
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	// GetBlockingByStaffAndDate получает записи мастера на дату в блокирующем статусе
	// Внутри транзакции блокирует строки (FOR UPDATE)
	GetBlockingByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Reservation, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetStaff(ctx context.Context, staffID int64) (*domain.Staff, error)
	GetDurationTier(ctx context.Context, tierID int64) (*domain.ServiceDurationTier, error)
	GetOffering(ctx context.Context, staffID, serviceID int64) (*domain.StaffServiceOffering, error)
}

// PromoRepository интерфейс репозитория промокодов
type PromoRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	IncrementUses(ctx context.Context, id int64) error
}

// LoyaltyRepository интерфейс репозитория штампов лояльности
type LoyaltyRepository interface {
	CountByClient(ctx context.Context, clientID int64) (int, error)
	Create(ctx context.Context, stamp *domain.LoyaltyStamp) (*domain.LoyaltyStamp, error)
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	// DoSerializable выполняет fn в SERIALIZABLE транзакции с повторами
	// при конфликте сериализации
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс клиента сервиса уведомлений
type Notifier interface {
	Send(ctx context.Context, clientID int64, templateType notifier.TemplateType, language string, params map[string]string) error
}

// Metrics интерфейс счетчиков бронирований
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
