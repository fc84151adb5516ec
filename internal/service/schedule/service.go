package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velline/salon-booking-service/internal/domain"
	scheduleRepo "github.com/velline/salon-booking-service/internal/infra/storage/schedule"
	"github.com/velline/salon-booking-service/internal/service/schedule/models"
)

// Service сервис управления расписаниями мастеров
type Service struct {
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		logger:       logger,
	}
}

// GetWorkingHours получает расписание мастера на дату
// Чтение открыто всем аутентифицированным ролям: расписание не секрет
func (s *Service) GetWorkingHours(ctx context.Context, staffID int64, date time.Time) (*models.WorkingHoursResponse, error) {
	s.logger.Info("GetWorkingHours: staff=%d, date=%s", staffID, date.Format(domain.DateFormat))

	if staffID <= 0 || date.IsZero() {
		return nil, fmt.Errorf("%w: staffID and date are required", ErrInvalidInput)
	}

	wh, err := s.scheduleRepo.GetByStaffAndDate(ctx, staffID, date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			s.logger.Warn("GetWorkingHours: no schedule for staff=%d on %s", staffID, date.Format(domain.DateFormat))
			return nil, ErrWorkingHoursNotFound
		}
		s.logger.Error("GetWorkingHours: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkingHours(wh), nil
}

// SetWorkingHours создает или перезаписывает расписание мастера на дату
// Доступно только staff и admin
func (s *Service) SetWorkingHours(ctx context.Context, req *models.SetWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("SetWorkingHours: staff=%d, date=%s, dayOff=%v, actor=%d",
		req.StaffID, req.Date.Format(domain.DateFormat), req.IsDayOff, req.Actor.ID)

	if !req.Actor.IsPrivileged() {
		s.logger.Warn("SetWorkingHours: access denied for actor=%d (%s)", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	if req.StaffID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: staffID and date are required", ErrInvalidInput)
	}

	// Мастер должен существовать; расписание для несуществующего мастера
	// было бы мусором, который никогда не прочтут
	if _, err := s.catalogRepo.GetStaff(ctx, req.StaffID); err != nil {
		s.logger.Warn("SetWorkingHours: staff id=%d not found: %v", req.StaffID, err)
		return nil, ErrStaffNotFound
	}

	wh, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("SetWorkingHours: invalid working hours for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.scheduleRepo.Upsert(ctx, wh)
	if err != nil {
		s.logger.Error("SetWorkingHours: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: SetWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetWorkingHours: saved schedule id=%d for staff=%d", saved.ID, saved.StaffID)
	return models.FromDomainWorkingHours(saved), nil
}
