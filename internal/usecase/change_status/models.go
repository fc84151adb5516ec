package change_status

import "github.com/velline/salon-booking-service/internal/domain"

// Request модель запроса на смену статуса записи
type Request struct {
	ReservationID int64
	Actor         domain.Actor
	NewStatus     domain.ReservationStatus
	// Reason причина отмены; используется только для статусов отмены
	Reason *string
}

// Response модель ответа на смену статуса
type Response struct {
	ReservationID int64
	Status        domain.ReservationStatus
	// Changed false означает, что запись уже была в запрошенном статусе
	Changed bool
	// WaitlistPromoted true, если отмена продвинула запись листа ожидания
	WaitlistPromoted bool
}
