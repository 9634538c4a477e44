package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	"github.com/Holding-1-at-a-time/booking-service/pkg/ptr"
)

// recordingExecutor записывает сгенерированный SQL вместо обращения к БД
type recordingExecutor struct {
	query        string
	args         []interface{}
	execErr      error
	rowsAffected int64
}

func (e *recordingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query = query
	e.args = args
	if e.execErr != nil {
		return nil, e.execErr
	}
	return driver.RowsAffected(e.rowsAffected), nil
}

func (e *recordingExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (e *recordingExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func TestUpdateStatus_TimestampSetOnFirstEntryOnly(t *testing.T) {
	// Метка входа в статус не должна перетираться при повторном апдейте
	tests := []struct {
		status domain.BookingStatus
		expr   string
	}{
		{domain.StatusConfirmed, "confirmed_at = COALESCE(confirmed_at, NOW())"},
		{domain.StatusCompleted, "completed_at = COALESCE(completed_at, NOW())"},
		{domain.StatusCancelled, "cancelled_at = COALESCE(cancelled_at, NOW())"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			executor := &recordingExecutor{rowsAffected: 1}
			repo := NewRepository(executor)

			err := repo.UpdateStatus(context.Background(), 1, tt.status, nil)
			require.NoError(t, err)

			assert.Contains(t, executor.query, tt.expr)
			assert.Contains(t, executor.query, "updated_at = NOW()")
		})
	}
}

func TestUpdateStatus_NoTimestampColumnForForwardStates(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusInProgress} {
		executor := &recordingExecutor{rowsAffected: 1}
		repo := NewRepository(executor)

		err := repo.UpdateStatus(context.Background(), 1, status, nil)
		require.NoError(t, err)

		assert.NotContains(t, executor.query, "COALESCE", "status %s has no entry timestamp", status)
	}
}

func TestUpdateStatus_NotesOnlyWhenProvided(t *testing.T) {
	t.Run("nil notes leave column untouched", func(t *testing.T) {
		executor := &recordingExecutor{rowsAffected: 1}
		repo := NewRepository(executor)

		require.NoError(t, repo.UpdateStatus(context.Background(), 1, domain.StatusConfirmed, nil))
		assert.NotContains(t, executor.query, "notes")
	})

	t.Run("notes written when set", func(t *testing.T) {
		executor := &recordingExecutor{rowsAffected: 1}
		repo := NewRepository(executor)

		require.NoError(t, repo.UpdateStatus(context.Background(), 1, domain.StatusCancelled, ptr.Ptr("called it off")))
		assert.Contains(t, executor.query, "notes")
		assert.Contains(t, executor.args, "called it off")
	})
}

func TestUpdateStatus_Errors(t *testing.T) {
	t.Run("zero rows means not found", func(t *testing.T) {
		repo := NewRepository(&recordingExecutor{rowsAffected: 0})

		err := repo.UpdateStatus(context.Background(), 99, domain.StatusConfirmed, nil)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("active slot index violation maps to slot taken", func(t *testing.T) {
		pqErr := &pq.Error{Code: uniqueViolation, Constraint: activeSlotIndex}
		repo := NewRepository(&recordingExecutor{execErr: pqErr})

		err := repo.UpdateStatus(context.Background(), 1, domain.StatusConfirmed, nil)
		assert.ErrorIs(t, err, ErrSlotTaken)
	})
}
