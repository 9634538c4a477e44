package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	"github.com/Holding-1-at-a-time/booking-service/pkg/dbmetrics"
	"github.com/Holding-1-at-a-time/booking-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// settingsRowID настройки бронирования хранятся единственной строкой
const settingsRowID = 1

// Repository репозиторий настроек бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает текущие настройки бронирования
func (r *Repository) Get(ctx context.Context) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"open_hour",
		"close_hour",
		"advance_booking_days",
		"valet_fee",
		"updated_at",
	).
		From("booking_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.BookingSettings
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.OpenHour,
		&settings.CloseHour,
		&settings.AdvanceBookingDays,
		&settings.ValetFee,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Update сохраняет настройки бронирования
func (r *Repository) Update(ctx context.Context, settings *domain.BookingSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_settings").
		Set("open_hour", settings.OpenHour).
		Set("close_hour", settings.CloseHour).
		Set("advance_booking_days", settings.AdvanceBookingDays).
		Set("valet_fee", settings.ValetFee).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
