package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/infras/otel/mocks"
	"tourbook/infras/postgres"
	"tourbook/shared/dto"
	"tourbook/shared/model"
	"tourbook/shared/repository"
)

type widget struct {
	ID     int64  `db:"id"     insert:"-"`
	Name   string `db:"name"`
	Status string `db:"status"`
	model.Metadata
}

func newRepo(t *testing.T) (repository.Repository[widget], sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.NewRepository[widget]("widget", "widgets", "id", conn, mocks.NewOtel()), mock
}

func byStatus(status string) dto.FilterGroup {
	return dto.And(dto.Filter{Field: "status", Value: status, Operator: dto.FilterOperatorEq})
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO widgets (name, status, created_at, updated_at) VALUES ($1, $2, $3, $4)")).
		WithArgs("lamp", "new", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), widget{Name: "lamp", Status: "new", Metadata: model.Metadata{CreatedAt: now, UpdatedAt: now}})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get(t *testing.T) {
	query := regexp.QuoteMeta("SELECT id, name, status, created_at, updated_at FROM widgets WHERE (id = $1)")

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepo(t)
		now := time.Now()

		mock.ExpectPrepare(query).
			ExpectQuery().
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "created_at", "updated_at"}).
				AddRow(7, "lamp", "new", now, now))

		got, err := repo.Get(context.Background(), dto.And(dto.Filter{Field: "id", Value: int64(7), Operator: dto.FilterOperatorEq}))

		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "lamp", got.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows returns zero value", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectPrepare(query).
			ExpectQuery().
			WithArgs(int64(8)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "created_at", "updated_at"}))

		got, err := repo.Get(context.Background(), dto.And(dto.Filter{Field: "id", Value: int64(8), Operator: dto.FilterOperatorEq}))

		require.NoError(t, err)
		assert.Zero(t, got.ID)
	})
}

func TestRepository_GetAll(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectPrepare(regexp.QuoteMeta(
		"SELECT id, name, status, created_at, updated_at FROM widgets WHERE (status = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		ExpectQuery().
		WithArgs("new", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "created_at", "updated_at"}).
			AddRow(1, "lamp", "new", now, now).
			AddRow(2, "desk", "new", now, now))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 10, SortBy: "created_at", SortDir: "DESC"}, byStatus("new"))

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAll_IgnoresUnknownSortColumn(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta(
		"SELECT id, name, status, created_at, updated_at FROM widgets WHERE (status = $1) LIMIT $2")).
		ExpectQuery().
		WithArgs("new", 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "created_at", "updated_at"}))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{Limit: 5, SortBy: "name; DROP TABLE widgets", SortDir: "ASC"}, byStatus("new"))

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Count(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT COUNT(id) FROM widgets WHERE (status = $1)")).
		ExpectQuery().
		WithArgs("new").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), byStatus("new"))

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_Exist(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM widgets WHERE (status = $1))")).
		ExpectQuery().
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exist, err := repo.Exist(context.Background(), byStatus("gone"))

	require.NoError(t, err)
	assert.False(t, exist)
}

func TestRepository_Update(t *testing.T) {
	query := regexp.QuoteMeta("UPDATE widgets SET name = $1, status = $2 WHERE (id = $3 AND status = $4)")
	filter := dto.And(
		dto.Filter{Field: "id", Value: int64(7), Operator: dto.FilterOperatorEq},
		dto.Filter{ArgName: "expected_status", Field: "status", Value: "new", Operator: dto.FilterOperatorEq},
	)
	mod := map[string]any{"status": "sold", "name": "lamp"}

	t.Run("returns affected rows", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec(query).
			WithArgs("lamp", "sold", int64(7), "new").
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := repo.Update(context.Background(), mod, filter)

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows when precondition does not hold", func(t *testing.T) {
		repo, mock := newRepo(t)

		mock.ExpectExec(query).
			WithArgs("lamp", "sold", int64(7), "new").
			WillReturnResult(sqlmock.NewResult(0, 0))

		affected, err := repo.Update(context.Background(), mod, filter)

		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("refuses to update without a filter", func(t *testing.T) {
		repo, _ := newRepo(t)

		_, err := repo.Update(context.Background(), mod, dto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestRepository_GetFromPrimary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	replica, replicaMock, err := sqlmock.New()
	require.NoError(t, err)
	defer replica.Close()

	conn := &postgres.Connection{Read: sqlx.NewDb(replica, "postgres"), Write: sqlx.NewDb(db, "postgres")}
	repo := repository.NewRepository[widget]("widget", "widgets", "id", conn, mocks.NewOtel())
	now := time.Now()

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT id, name, status, created_at, updated_at FROM widgets WHERE (id = $1)")).
		ExpectQuery().
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status", "created_at", "updated_at"}).
			AddRow(7, "lamp", "sold", now, now))

	got, err := repo.GetFromPrimary(context.Background(), dto.And(dto.Filter{Field: "id", Value: int64(7), Operator: dto.FilterOperatorEq}))

	require.NoError(t, err)
	assert.Equal(t, "sold", got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, replicaMock.ExpectationsWereMet())
}
