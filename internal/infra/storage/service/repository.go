package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	"github.com/Holding-1-at-a-time/booking-service/pkg/dbmetrics"
	"github.com/Holding-1-at-a-time/booking-service/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

const slugIndex = "services_slug_uniq"

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var serviceColumns = []string{
	"id",
	"slug",
	"name",
	"category",
	"description",
	"features",
	"price",
	"duration",
	"process_steps",
	"is_active",
	"sort_order",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую услугу. Нарушение уникальности slug
// маппится в ErrSlugTaken.
func (r *Repository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	steps, err := json.Marshal(svc.ProcessSteps)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal process steps: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"slug",
			"name",
			"category",
			"description",
			"features",
			"price",
			"duration",
			"process_steps",
			"is_active",
			"sort_order",
		).
		Values(
			svc.Slug,
			svc.Name,
			svc.Category,
			svc.Description,
			pq.Array(svc.Features),
			svc.Price,
			svc.Duration,
			steps,
			svc.IsActive,
			svc.SortOrder,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, slugIndex) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return svc, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetBySlug получает услугу по slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug}, "GetBySlug")
}

// List получает услуги в порядке sort_order.
// При onlyActive=true возвращает только активные.
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("sort_order ASC, id ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// Update обновляет атрибуты услуги целиком
func (r *Repository) Update(ctx context.Context, svc *domain.Service) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	steps, err := json.Marshal(svc.ProcessSteps)
	if err != nil {
		return fmt.Errorf("%w: Update - marshal process steps: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Update("services").
		Set("slug", svc.Slug).
		Set("name", svc.Name).
		Set("category", svc.Category).
		Set("description", svc.Description).
		Set("features", pq.Array(svc.Features)).
		Set("price", svc.Price).
		Set("duration", svc.Duration).
		Set("process_steps", steps).
		Set("is_active", svc.IsActive).
		Set("sort_order", svc.SortOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": svc.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, slugIndex) {
			return ErrSlugTaken
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// SetActive мягкая (де)активация услуги вместо физического удаления
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// Delete физически удаляет услугу. Вызывающая сторона обязана убедиться,
// что на услугу не ссылается ни одно бронирование.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, method string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	svc, err := scanService(executor.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan service: %v", ErrScanRow, method, err)
	}

	return svc, nil
}

// scanService сканирует строку в модель услуги через переданную scan функцию
func scanService(scan func(dest ...interface{}) error) (*domain.Service, error) {
	var svc domain.Service
	var steps []byte
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&svc.ID,
		&svc.Slug,
		&svc.Name,
		&svc.Category,
		&svc.Description,
		pq.Array(&svc.Features),
		&svc.Price,
		&svc.Duration,
		&steps,
		&svc.IsActive,
		&svc.SortOrder,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(steps) > 0 {
		if err := json.Unmarshal(steps, &svc.ProcessSteps); err != nil {
			return nil, fmt.Errorf("unmarshal process steps: %w", err)
		}
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation && pqErr.Constraint == constraint
	}
	return false
}
