package review

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

var reviewColumns = []string{
	"id",
	"service_id",
	"customer_name",
	"customer_email",
	"rating",
	"comment",
	"is_approved",
	"is_featured",
	"created_at",
	"updated_at",
}

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает отзыв; новые отзывы всегда неодобренные
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns(
			"service_id",
			"customer_name",
			"customer_email",
			"rating",
			"comment",
		).
		Values(
			review.ServiceID,
			review.CustomerName,
			review.CustomerEmail,
			review.Rating,
			review.Comment,
		).
		Suffix("RETURNING id, is_approved, is_featured, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&review.IsApproved,
		&review.IsFeatured,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time
	review.UpdatedAt = updatedAt.Time

	return review, nil
}

// GetByID получает отзыв по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var review domain.Review
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&review.ID,
		&review.ServiceID,
		&review.CustomerName,
		&review.CustomerEmail,
		&review.Rating,
		&review.Comment,
		&review.IsApproved,
		&review.IsFeatured,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan review: %v", ErrScanRow, err)
	}

	review.CreatedAt = createdAt.Time
	review.UpdatedAt = updatedAt.Time

	return &review, nil
}

// ListApprovedByService получает одобренные отзывы услуги,
// сначала featured, потом свежие
func (r *Repository) ListApprovedByService(ctx context.Context, serviceID int64) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"service_id": serviceID, "is_approved": true}).
		OrderBy("is_featured DESC, created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListApprovedByService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&review.ID,
			&review.ServiceID,
			&review.CustomerName,
			&review.CustomerEmail,
			&review.Rating,
			&review.Comment,
			&review.IsApproved,
			&review.IsFeatured,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListApprovedByService - scan row: %v", ErrScanRow, err)
		}

		review.CreatedAt = createdAt.Time
		review.UpdatedAt = updatedAt.Time

		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListApprovedByService - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// SetModeration выставляет флаги модерации отзыва
func (r *Repository) SetModeration(ctx context.Context, id int64, approved, featured bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reviews").
		Set("is_approved", approved).
		Set("is_featured", featured).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetModeration - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetModeration - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetModeration - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}
