package activitylog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	"github.com/Holding-1-at-a-time/booking-service/pkg/dbmetrics"
	"github.com/Holding-1-at-a-time/booking-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository append-only репозиторий журнала действий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала действий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert записывает событие в журнал. Журнал только дополняется,
// обновление и удаление записей не поддерживаются.
func (r *Repository) Insert(ctx context.Context, entry *domain.ActivityLogEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var metadata interface{}
	if entry.Metadata != nil {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("%w: Insert - marshal metadata: %v", ErrBuildQuery, err)
		}
		metadata = raw
	}

	query, args, err := psqlbuilder.Insert("activity_log").
		Columns(
			"action",
			"actor_id",
			"booking_id",
			"customer_email",
			"metadata",
		).
		Values(
			entry.Action,
			entry.ActorID,
			entry.BookingID,
			entry.CustomerEmail,
			metadata,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	_, err = executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
