package availability

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timenest/timenest-api/internal/domain"
	"github.com/timenest/timenest-api/pkg/types"
)

var ruleColumns = []string{
	"id", "user_id", "day_of_week", "start_time", "end_time", "valid_from", "valid_until", "created_at",
}

func newRepositoryMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepositoryMock(t)
	createdAt := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO availability (id,user_id,day_of_week,start_time,end_time,valid_from,valid_until)")).
		WithArgs(sqlmock.AnyArg(), "owner-1", 1, "17:00:00", "20:00:00", "2024-01-01", "2024-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	rule, err := repo.Create(context.Background(), &domain.AvailabilityRule{
		OwnerID:    "owner-1",
		DayOfWeek:  1,
		StartTime:  types.MustParseTimeOfDay("17:00"),
		EndTime:    types.MustParseTimeOfDay("20:00"),
		ValidFrom:  types.MustParseDate("2024-01-01"),
		ValidUntil: types.MustParseDate("2024-03-31"),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)
	assert.Equal(t, createdAt, rule.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByOwner(t *testing.T) {
	t.Run("returns raw records", func(t *testing.T) {
		repo, mock := newRepositoryMock(t)
		validFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		validUntil := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, day_of_week, start_time::text, end_time::text")).
			WithArgs("owner-1").
			WillReturnRows(sqlmock.NewRows(ruleColumns).
				AddRow("r1", "owner-1", 1, "17:00:00", "20:00:00", validFrom, validUntil, validFrom).
				AddRow("r2", "owner-1", 3, "not-a-time", "20:00:00", validFrom, validUntil, validFrom))

		records, err := repo.ListByOwner(context.Background(), "owner-1")

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "17:00:00", records[0].StartTime)
		assert.Equal(t, types.MustParseDate("2024-03-31"), records[0].ValidUntil)
		// Разбор времени выполняется позже, репозиторий не отбрасывает записи
		assert.Equal(t, "not-a-time", records[1].StartTime)
	})

	t.Run("empty list is not an error", func(t *testing.T) {
		repo, mock := newRepositoryMock(t)
		mock.ExpectQuery("FROM availability").WithArgs("owner-2").WillReturnRows(sqlmock.NewRows(ruleColumns))

		records, err := repo.ListByOwner(context.Background(), "owner-2")

		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("query failure is returned", func(t *testing.T) {
		repo, mock := newRepositoryMock(t)
		mock.ExpectQuery("FROM availability").WillReturnError(errors.New("connection refused"))

		_, err := repo.ListByOwner(context.Background(), "owner-1")
		assert.ErrorIs(t, err, ErrExecQuery)
	})
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepositoryMock(t)
	mock.ExpectQuery("FROM availability").WithArgs("missing").WillReturnRows(sqlmock.NewRows(ruleColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newRepositoryMock(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability WHERE id = $1 AND user_id = $2")).
			WithArgs("r1", "owner-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), "owner-1", "r1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign rule", func(t *testing.T) {
		repo, mock := newRepositoryMock(t)
		mock.ExpectExec("DELETE FROM availability").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), "intruder", "r1")
		assert.ErrorIs(t, err, ErrRuleNotFound)
	})
}
