package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/velline/salon-booking-service/internal/domain"
	reservationRepo "github.com/velline/salon-booking-service/internal/infra/storage/reservation"
	"github.com/velline/salon-booking-service/internal/service/reservations/models"
)

// Service сервис чтения записей
// Мутации проходят через usecase слои (создание, смена статуса);
// здесь только выборки с проверкой прав доступа
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свою запись; staff и admin - любую
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for actor=%d (%s)", id, actor.ID, actor.Role)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.IsPrivileged() && actor.ID != res.ClientID {
		s.logger.Warn("GetByID: access denied for actor=%d to reservation id=%d", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res), nil
}

// ListByClient получает историю записей клиента
// Клиент видит только свою историю; staff и admin - любую
func (s *Service) ListByClient(ctx context.Context, req *models.ListClientReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByClient: fetching reservations for client=%d, actor=%d", req.ClientID, req.Actor.ID)

	if !req.Actor.IsPrivileged() && req.Actor.ID != req.ClientID {
		s.logger.Warn("ListByClient: access denied for actor=%d to client=%d history", req.Actor.ID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var status *domain.ReservationStatus
	if req.Status != nil {
		converted, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByClient: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &converted
	}

	reservations, err := s.reservationRepo.ListByClient(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("ListByClient: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: ListByClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClient: fetched %d reservations for client=%d", len(reservations), req.ClientID)
	return models.FromDomainReservationList(reservations), nil
}

// ListByStaff получает календарь мастера с фильтрацией по периоду и статусу
// Доступно только staff и admin
func (s *Service) ListByStaff(ctx context.Context, req *models.ListStaffReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByStaff: fetching reservations for staff=%d, actor=%d", req.StaffID, req.Actor.ID)

	if !req.Actor.IsPrivileged() {
		s.logger.Warn("ListByStaff: access denied for actor=%d (%s)", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByStaff: invalid filter for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.ListByStaffWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByStaff: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: ListByStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByStaff: fetched %d reservations for staff=%d", len(reservations), req.StaffID)
	return models.FromDomainReservationList(reservations), nil
}
