package loyalty

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/pkg/psqlbuilder"
	"github.com/velline/salon-booking-service/pkg/txmanager"
)

// Repository репозиторий штампов лояльности
// Штампы только добавляются; удаления нет
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория лояльности
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountByClient возвращает количество штампов клиента
// Внутри транзакции коммита определяет порядковый номер нового штампа
func (r *Repository) CountByClient(ctx context.Context, clientID int64) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("loyalty_stamps").
		Where(squirrel.Eq{"client_id": clientID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByClient - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByClient - scan row: %v", ErrScanRow, err)
	}
	return count, nil
}

// Create создает штамп лояльности
func (r *Repository) Create(ctx context.Context, stamp *domain.LoyaltyStamp) (*domain.LoyaltyStamp, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("loyalty_stamps").
		Columns(
			"client_id",
			"reservation_id",
			"sequence_number",
			"is_reward",
		).
		Values(
			stamp.ClientID,
			stamp.ReservationID,
			stamp.SequenceNumber,
			stamp.IsReward,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&stamp.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	stamp.CreatedAt = createdAt.Time

	return stamp, nil
}
