package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonmarket/booking-engine/internal/domain"
	"github.com/salonmarket/booking-engine/pkg/dbmetrics"
	"github.com/salonmarket/booking-engine/pkg/psqlbuilder"
)

// Repository репозиторий для работы с настройками слотов салона
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySalon получает настройки слотов для салона
// При отсутствии записи возвращает ErrConfigNotFound - дефолты подставляет сервисный слой
func (r *Repository) GetBySalon(ctx context.Context, salonID int64) (*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"slot_granularity_minutes",
		"advance_booking_days",
		"min_notice_minutes",
		"created_at",
		"updated_at",
	).
		From("salon_slots_config").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.SalonSlotsConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.SalonID,
		&cfg.SlotGranularityMinutes,
		&cfg.AdvanceBookingDays,
		&cfg.MinNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - scan config: %w", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert создает или обновляет настройки слотов салона
// ON CONFLICT по salon_id: на салон всегда не больше одной записи
func (r *Repository) Upsert(ctx context.Context, cfg *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salon_slots_config").
		Columns(
			"salon_id",
			"slot_granularity_minutes",
			"advance_booking_days",
			"min_notice_minutes",
		).
		Values(
			cfg.SalonID,
			cfg.SlotGranularityMinutes,
			cfg.AdvanceBookingDays,
			cfg.MinNoticeMinutes,
		).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE SET
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_notice_minutes = EXCLUDED.min_notice_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %w", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
