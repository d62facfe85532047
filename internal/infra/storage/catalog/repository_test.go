package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestRepository_GetDurations(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, duration_minutes FROM services WHERE id = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "duration_minutes"}).
			AddRow(1, 45).
			AddRow(2, 0))

	durations, err := repo.GetDurations(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 45, 2: 0}, durations)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetDurations_Empty(t *testing.T) {
	repo, mock := newRepo(t)

	durations, err := repo.GetDurations(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, durations)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, price, duration_minutes FROM services WHERE name ILIKE $1 ORDER BY name ASC LIMIT 15",
	)).WithArgs("%corte%").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "Corte", 35.0, 30))

	services, err := repo.List(context.Background(), domain.ListParams{Search: "corte"})
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Corte", services[0].Name)
	assert.Equal(t, 30, services[0].DurationMinutes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT").WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE services SET updated_at = NOW(), duration_minutes = $1 WHERE id = $2",
	)).WithArgs(40, int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 3, domain.ServiceUpdate{DurationMinutes: ptr.Ptr(40)})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
