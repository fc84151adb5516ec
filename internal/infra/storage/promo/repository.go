package promo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/pkg/psqlbuilder"
	"github.com/velline/salon-booking-service/pkg/txmanager"
)

// Repository репозиторий промокодов
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode получает промокод по точному совпадению кода
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"discount_type",
		"discount_value",
		"valid_from",
		"valid_until",
		"min_order_amount",
		"max_uses",
		"current_uses",
		"is_active",
	).
		From("promo_codes").
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.PromoCode
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.Code,
		&p.DiscountType,
		&p.DiscountValue,
		&p.ValidFrom,
		&p.ValidUntil,
		&p.MinOrderAmount,
		&p.MaxUses,
		&p.CurrentUses,
		&p.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan row: %v", ErrScanRow, err)
	}

	return &p, nil
}

// IncrementUses увеличивает счетчик применений промокода
// Лимит проверяется прямо в UPDATE: между валидацией и инкрементом
// могла пройти конкурентная транзакция
func (r *Repository) IncrementUses(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promo_codes").
		Set("current_uses", squirrel.Expr("current_uses + 1")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("(max_uses IS NULL OR current_uses < max_uses)")).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementUses - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUses - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUses - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrUsesExhausted
	}
	return nil
}
