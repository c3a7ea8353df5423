package promo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/salonmarket/booking-engine/internal/domain"
	"github.com/salonmarket/booking-engine/pkg/dbmetrics"
	"github.com/salonmarket/booking-engine/pkg/psqlbuilder"
)

var promoColumns = []string{
	"id",
	"salon_id",
	"code",
	"discount_percent",
	"valid_from",
	"valid_until",
	"max_uses",
	"used_count",
	"is_active",
	"created_at",
}

// Repository репозиторий для работы с промокодами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория промокодов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode получает активный промокод салона по коду
// Код сравнивается без учета регистра
func (r *Repository) GetByCode(ctx context.Context, salonID int64, code string) (*domain.PromoCode, error) {
	return r.getByCode(ctx, salonID, code, false)
}

// GetByCodeForUpdate получает промокод с блокировкой строки (FOR UPDATE)
// Используется при фиксации использования промокода в транзакции бронирования,
// чтобы конкурентные бронирования не превысили лимит использований
func (r *Repository) GetByCodeForUpdate(ctx context.Context, salonID int64, code string) (*domain.PromoCode, error) {
	return r.getByCode(ctx, salonID, code, true)
}

func (r *Repository) getByCode(ctx context.Context, salonID int64, code string, forUpdate bool) (*domain.PromoCode, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(promoColumns...).
		From("promo_codes").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.Eq{"code": strings.ToUpper(strings.TrimSpace(code))}).
		Where(squirrel.Eq{"is_active": true})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByCode - build select query: %v", ErrBuildQuery, err)
	}

	var promo domain.PromoCode
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&promo.ID,
		&promo.SalonID,
		&promo.Code,
		&promo.DiscountPercent,
		&promo.ValidFrom,
		&promo.ValidUntil,
		&promo.MaxUses,
		&promo.UsedCount,
		&promo.IsActive,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByCode - scan promo: %w", ErrScanRow, err)
	}

	promo.CreatedAt = createdAt.Time

	return &promo, nil
}

// IncrementUsage увеличивает счётчик использований промокода
// Вызывается в той же транзакции, что и создание бронирования
func (r *Repository) IncrementUsage(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promo_codes").
		Set("used_count", squirrel.Expr("used_count + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPromoNotFound
	}

	return nil
}
