package reservation

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

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

var reservationColumns = []string{
	"id",
	"client_id",
	"staff_id",
	"reservation_date",
	"start_time",
	"end_time",
	"status",
	"total_price",
	"discount_amount",
	"promo_code_id",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create создает запись вместе с её строками (line items) одним логическим действием
// Должен вызываться внутри транзакции: строки вставляются отдельными запросами,
// и частичная запись не должна быть наблюдаемой
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"client_id",
			"staff_id",
			"reservation_date",
			"start_time",
			"end_time",
			"status",
			"total_price",
			"discount_amount",
			"promo_code_id",
		).
		Values(
			res.ClientID,
			res.StaffID,
			res.Date,
			res.StartTime,
			res.EndTime,
			res.Status,
			res.TotalPrice,
			res.DiscountAmount,
			res.PromoCodeID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	for i := range res.LineItems {
		li := &res.LineItems[i]
		li.ReservationID = res.ID

		query, args, err := psqlbuilder.Insert("reservation_line_items").
			Columns(
				"reservation_id",
				"service_id",
				"duration_tier_id",
				"duration_minutes",
				"price",
				"sort_order",
			).
			Values(
				li.ReservationID,
				li.ServiceID,
				li.DurationTierID,
				li.DurationMinutes,
				li.Price,
				li.SortOrder,
			).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build line item insert: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&li.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - execute line item insert: %v", ErrExecQuery, err)
		}
	}

	return res, nil
}

// GetByID получает запись по ID вместе с её строками
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := r.scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	if err := r.loadLineItems(ctx, executor, res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetBlockingByStaffAndDate получает записи мастера на дату, находящиеся
// в блокирующем статусе (занимающие календарь)
// Внутри транзакции добавляет FOR UPDATE: авторитетная проверка конфликтов
// при коммите должна видеть и блокировать свежие данные
func (r *Repository) GetBlockingByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	inactive := make([]string, len(domain.CancelledStatuses))
	for i, s := range domain.CancelledStatuses {
		inactive[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"reservation_date": date}).
		Where(squirrel.NotEq{"status": inactive}).
		OrderBy("start_time ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockingByStaffAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel переводит запись в статус отмены с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ReservationStatus, reason *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// ListByClient получает записи клиента, опционально фильтруя по статусу
func (r *Repository) ListByClient(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("reservation_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListByStaffWithFilter получает записи мастера с гибкой фильтрацией
// по периоду, статусу и включению отменённых
func (r *Repository) ListByStaffWithFilter(ctx context.Context, filter domain.StaffReservationsFilter) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"staff_id": filter.StaffID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		inactive := make([]string, len(domain.CancelledStatuses))
		for i, s := range domain.CancelledStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaffWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaffWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListStartingBetween получает записи в указанных статусах, начинающиеся
// в полуоткрытом окне [from, to). Используется сканом напоминаний.
func (r *Repository) ListStartingBetween(ctx context.Context, from, to time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	return r.listByWindow(ctx, "start_time", from, to, statuses)
}

// ListEndingBetween получает записи в указанных статусах, заканчивающиеся
// в полуоткрытом окне [from, to). Используется сканом запросов отзывов.
func (r *Repository) ListEndingBetween(ctx context.Context, from, to time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	return r.listByWindow(ctx, "end_time", from, to, statuses)
}

func (r *Repository) listByWindow(ctx context.Context, timeColumn string, from, to time.Time, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := listByWindowQuery(timeColumn, from, to, statuses)
	if err != nil {
		return nil, fmt.Errorf("%w: listByWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listByWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// listByWindowQuery строит запрос окна по моменту начала или конца записи.
// Времена хранятся как VARCHAR "HH:MM", поэтому перед сложением с датой
// нужен явный каст ::time - неявного приведения varchar -> time в
// PostgreSQL нет, без каста запрос падает на операторе date + varchar
func listByWindowQuery(timeColumn string, from, to time.Time, statuses []domain.ReservationStatus) (string, []interface{}, error) {
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	moment := "(reservation_date + " + timeColumn + "::time)"

	return psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": statusStrings}).
		Where(squirrel.Expr(moment+" >= ?", from)).
		Where(squirrel.Expr(moment+" < ?", to)).
		OrderBy("reservation_date ASC, start_time ASC").
		ToSql()
}

func (r *Repository) execExpectingRow(ctx context.Context, executor txmanager.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservationFields(scanner rowScanner, res *domain.Reservation) error {
	var createdAt, updatedAt sql.NullTime
	err := scanner.Scan(
		&res.ID,
		&res.ClientID,
		&res.StaffID,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&res.TotalPrice,
		&res.DiscountAmount,
		&res.PromoCodeID,
		&res.CancellationReason,
		&res.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return err
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time
	return nil
}

func (r *Repository) scanReservation(row *sql.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	err := scanReservationFields(row, &res)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanReservation - scan row: %v", ErrScanRow, err)
	}
	return &res, nil
}

func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		if err := scanReservationFields(rows, &res); err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}
	return reservations, nil
}

func (r *Repository) loadLineItems(ctx context.Context, executor txmanager.DBExecutor, res *domain.Reservation) error {
	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"service_id",
		"duration_tier_id",
		"duration_minutes",
		"price",
		"sort_order",
	).
		From("reservation_line_items").
		Where(squirrel.Eq{"reservation_id": res.ID}).
		OrderBy("sort_order ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadLineItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadLineItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.ReservationLineItem, 0)
	for rows.Next() {
		var li domain.ReservationLineItem
		err := rows.Scan(
			&li.ID,
			&li.ReservationID,
			&li.ServiceID,
			&li.DurationTierID,
			&li.DurationMinutes,
			&li.Price,
			&li.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("%w: loadLineItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadLineItems - rows error: %v", ErrScanRow, err)
	}

	res.LineItems = items
	return nil
}
