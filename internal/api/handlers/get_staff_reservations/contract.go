package get_staff_reservations

import (
	"context"

	"github.com/velline/salon-booking-service/internal/service/reservations/models"
)

type ReservationService interface {
	ListByStaff(ctx context.Context, req *models.ListStaffReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
