package get_available_slots

import (
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StaffID        int64     // ID мастера
	ServiceID      int64     // ID услуги
	DurationTierID int64     // ID тарифа длительности
	Date           time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time
	StaffID         int64
	ServiceID       int64
	DurationMinutes int
	Slots           []domain.AvailableSlot
}
