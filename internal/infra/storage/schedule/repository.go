package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/pkg/psqlbuilder"
	"github.com/velline/salon-booking-service/pkg/txmanager"
)

// Repository репозиторий расписаний мастеров
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaffAndDate получает расписание мастера на конкретную дату
// Отсутствие записи - это ErrWorkingHoursNotFound, а не пустое расписание:
// движок никогда не выдумывает график по умолчанию
func (r *Repository) GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time) (*domain.StaffWorkingHours, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"work_date",
		"open_time",
		"close_time",
		"is_day_off",
		"created_at",
		"updated_at",
	).
		From("staff_working_hours").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"work_date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.StaffWorkingHours
	var openTime, closeTime sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&wh.StaffID,
		&wh.Date,
		&openTime,
		&closeTime,
		&wh.IsDayOff,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndDate - scan row: %v", ErrScanRow, err)
	}

	if openTime.Valid {
		if err := wh.OpenTime.Scan(openTime.String); err != nil {
			return nil, fmt.Errorf("%w: GetByStaffAndDate - parse open_time: %v", ErrScanRow, err)
		}
	}
	if closeTime.Valid {
		if err := wh.CloseTime.Scan(closeTime.String); err != nil {
			return nil, fmt.Errorf("%w: GetByStaffAndDate - parse close_time: %v", ErrScanRow, err)
		}
	}
	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}

// Upsert создает или перезаписывает расписание мастера на дату
// Административная операция: одна запись на (мастер, дата)
func (r *Repository) Upsert(ctx context.Context, wh *domain.StaffWorkingHours) (*domain.StaffWorkingHours, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_working_hours").
		Columns(
			"staff_id",
			"work_date",
			"open_time",
			"close_time",
			"is_day_off",
		).
		Values(
			wh.StaffID,
			wh.Date,
			wh.OpenTime,
			wh.CloseTime,
			wh.IsDayOff,
		).
		Suffix(`ON CONFLICT (staff_id, work_date) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			is_day_off = EXCLUDED.is_day_off,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&wh.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}
	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return wh, nil
}
