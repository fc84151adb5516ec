package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/pkg/psqlbuilder"
	"github.com/velline/salon-booking-service/pkg/txmanager"
)

// Repository репозиторий каталога: мастера, тарифы длительности, связки мастер-услуга
// Каталог управляется внешней админкой; движок бронирования его только читает
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStaff получает мастера по ID
func (r *Repository) GetStaff(ctx context.Context, staffID int64) (*domain.Staff, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("staff").
		Where(squirrel.Eq{"id": staffID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan row: %v", ErrScanRow, err)
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetDurationTier получает тариф длительности по ID
func (r *Repository) GetDurationTier(ctx context.Context, tierID int64) (*domain.ServiceDurationTier, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"duration_minutes",
		"base_price",
		"is_active",
	).
		From("service_duration_tiers").
		Where(squirrel.Eq{"id": tierID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDurationTier - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.ServiceDurationTier
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.ServiceID,
		&t.DurationMinutes,
		&t.BasePrice,
		&t.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrDurationTierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDurationTier - scan row: %v", ErrScanRow, err)
	}

	return &t, nil
}

// GetOffering получает связку (мастер, услуга) с модификатором цены
// Отсутствие связки означает, что мастер не оказывает услугу
func (r *Repository) GetOffering(ctx context.Context, staffID, serviceID int64) (*domain.StaffServiceOffering, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"staff_id",
		"service_id",
		"price_modifier",
	).
		From("staff_service_offerings").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOffering - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.StaffServiceOffering
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.StaffID,
		&o.ServiceID,
		&o.PriceModifier,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOffering - scan row: %v", ErrScanRow, err)
	}

	return &o, nil
}
