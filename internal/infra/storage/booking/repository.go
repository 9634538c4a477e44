package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	"github.com/Holding-1-at-a-time/booking-service/pkg/dbmetrics"
	"github.com/Holding-1-at-a-time/booking-service/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL для нарушения уникальности
const uniqueViolation = "23505"

// activeSlotIndex имя частичного уникального индекса на активный слот
const activeSlotIndex = "bookings_active_slot_uniq"

var bookingColumns = []string{
	"id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"service_id",
	"preferred_date",
	"preferred_time",
	"vehicle_type",
	"message",
	"status",
	"notes",
	"confirmed_at",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование со статусом из booking.Status.
// Если в контексте передана активная транзакция, использует её — проверка
// конфликта слота и вставка должны выполняться в одной сериализуемой
// транзакции. Нарушение частичного уникального индекса на активный
// (preferred_date, preferred_time) маппится в ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_name",
			"customer_email",
			"customer_phone",
			"service_id",
			"preferred_date",
			"preferred_time",
			"vehicle_type",
			"message",
			"status",
			"notes",
		).
		Values(
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.ServiceID,
			booking.PreferredDate,
			booking.PreferredTime,
			booking.VehicleType,
			booking.Message,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err, activeSlotIndex) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByDate получает бронирования на указанную дату, исключая статусы из
// excludeStatuses. Детектор конфликтов передаёт сюда статусы, освобождающие
// слот (cancelled, completed); расчёт сетки — только cancelled.
// Внутри транзакции строки блокируются через FOR UPDATE, чтобы проверка
// конфликта и последующая запись были согласованы.
func (r *Repository) GetByDate(ctx context.Context, date time.Time, excludeStatuses []domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"preferred_date": date})

	if len(excludeStatuses) > 0 {
		statusStrings := make([]string, len(excludeStatuses))
		for i, s := range excludeStatuses {
			statusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCustomerEmail получает историю бронирований клиента,
// сначала самые свежие
func (r *Repository) GetByCustomerEmail(ctx context.Context, email string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_email": email}).
		OrderBy("preferred_date DESC, created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListRecent получает до limit последних бронирований для агрегации
// статистики. Ограничение сверху держит стоимость запроса предсказуемой.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRecent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountByService подсчитывает бронирования, ссылающиеся на услугу.
// Используется при удалении услуги: с ненулевым счётчиком допустима
// только деактивация.
func (r *Repository) CountByService(ctx context.Context, serviceID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByService - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByService - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус бронирования и опционально заметки.
// Временная метка входа в статус (confirmed_at/completed_at/cancelled_at)
// ставится через COALESCE: повторный вход в тот же статус уже установленную
// метку не перезаписывает.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}

	switch status {
	case domain.StatusConfirmed:
		updateBuilder = updateBuilder.Set("confirmed_at", squirrel.Expr("COALESCE(confirmed_at, NOW())"))
	case domain.StatusCompleted:
		updateBuilder = updateBuilder.Set("completed_at", squirrel.Expr("COALESCE(completed_at, NOW())"))
	case domain.StatusCancelled:
		updateBuilder = updateBuilder.Set("cancelled_at", squirrel.Expr("COALESCE(cancelled_at, NOW())"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err, activeSlotIndex) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку в модель бронирования
func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.ServiceID,
		&booking.PreferredDate,
		&booking.PreferredTime,
		&booking.VehicleType,
		&booking.Message,
		&booking.Status,
		&booking.Notes,
		&booking.ConfirmedAt,
		&booking.CompletedAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.CustomerName,
			&booking.CustomerEmail,
			&booking.CustomerPhone,
			&booking.ServiceID,
			&booking.PreferredDate,
			&booking.PreferredTime,
			&booking.VehicleType,
			&booking.Message,
			&booking.Status,
			&booking.Notes,
			&booking.ConfirmedAt,
			&booking.CompletedAt,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isUniqueViolation проверяет нарушение конкретного уникального индекса
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation && pqErr.Constraint == constraint
	}
	return false
}
