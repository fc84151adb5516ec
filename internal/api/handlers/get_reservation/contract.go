package get_reservation

import (
	"context"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
