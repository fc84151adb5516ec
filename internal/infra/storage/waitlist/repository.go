package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/pkg/psqlbuilder"
	"github.com/velline/salon-booking-service/pkg/txmanager"
	"github.com/velline/salon-booking-service/pkg/types"
)

// Repository репозиторий листа ожидания
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

var entryColumns = []string{
	"id",
	"client_id",
	"service_id",
	"staff_id",
	"desired_date",
	"desired_start",
	"desired_end",
	"status",
	"created_at",
	"updated_at",
}

// GetByID получает запись листа ожидания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}
	return entry, nil
}

// FindOldestActiveMatch находит самую старую (FIFO) активную запись,
// подходящую под освободившийся слот: та же услуга, мастер совпадает
// или не важен, желаемая дата наступила (<= freedDate)
// Внутри транзакции блокирует выбранную строку (FOR UPDATE)
func (r *Repository) FindOldestActiveMatch(ctx context.Context, staffID, serviceID int64, freedDate time.Time) (*domain.WaitlistEntry, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"status": domain.WaitlistActive}).
		Where(squirrel.Or{
			squirrel.Eq{"staff_id": nil},
			squirrel.Eq{"staff_id": staffID},
		}).
		Where(squirrel.LtOrEq{"desired_date": freedDate}).
		OrderBy("created_at ASC").
		Limit(1)

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOldestActiveMatch - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoMatch
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindOldestActiveMatch - scan row: %v", ErrScanRow, err)
	}
	return entry, nil
}

// UpdateStatus обновляет статус записи листа ожидания
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.WaitlistStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(scanner rowScanner) (*domain.WaitlistEntry, error) {
	var e domain.WaitlistEntry
	var desiredStart, desiredEnd sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := scanner.Scan(
		&e.ID,
		&e.ClientID,
		&e.ServiceID,
		&e.StaffID,
		&e.DesiredDate,
		&desiredStart,
		&desiredEnd,
		&e.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if desiredStart.Valid {
		var ts types.TimeString
		if err := ts.Scan(desiredStart.String); err != nil {
			return nil, err
		}
		e.DesiredStart = &ts
	}
	if desiredEnd.Valid {
		var ts types.TimeString
		if err := ts.Scan(desiredEnd.String); err != nil {
			return nil, err
		}
		e.DesiredEnd = &ts
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time
	return &e, nil
}
