package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/infras/otel/mocks"
	"tourbook/infras/postgres"
	"tourbook/internal/domains/bookingrequest/model"
	"tourbook/internal/domains/bookingrequest/repository"
	"tourbook/shared"
	gRepo "tourbook/shared/repository"
)

const confirmQuery = "UPDATE booking_requests SET admin_reviewed_at = $1, admin_reviewed_by = $2, charge_id = $3, paid_amount = $4, status = $5, updated_at = $6 WHERE (id = $7 AND status = $8)"

func newRepo(t *testing.T) (repository.BookingRequest, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel()), mock
}

func TestBookingRequest_ConditionalUpdate(t *testing.T) {
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	patch := model.ConfirmPatch("pi_1", 13000, "admin-1", at)

	t.Run("row still pending", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(confirmQuery)).
			WithArgs(at, "admin-1", "pi_1", int64(13000), "CONFIRMED", at, int64(42), "PENDING_CONFIRMATION").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ConditionalUpdate(context.Background(), 42, model.StatusPendingConfirmation, patch)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status moved on", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(confirmQuery)).
			WithArgs(at, "admin-1", "pi_1", int64(13000), "CONFIRMED", at, int64(42), "PENDING_CONFIRMATION").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ConditionalUpdate(context.Background(), 42, model.StatusPendingConfirmation, patch)

		assert.ErrorIs(t, err, gRepo.ErrPreconditionFailed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec(regexp.QuoteMeta(confirmQuery)).
			WillReturnError(errors.New("connection reset by peer"))

		err := repo.ConditionalUpdate(context.Background(), 42, model.StatusPendingConfirmation, patch)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, gRepo.ErrPreconditionFailed)
	})
}

func TestBookingRequest_GetFromPrimary(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(`SELECT .* FROM booking_requests WHERE \(id = \$1\)`).
		ExpectQuery().
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "total_amount"}).
			AddRow(42, "PENDING_CONFIRMATION", 13000))

	got, err := repo.GetFromPrimary(context.Background(), shared.FilterByID(42, model.FieldID))

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, model.StatusPendingConfirmation, got.Status)
	assert.Equal(t, int64(13000), got.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
