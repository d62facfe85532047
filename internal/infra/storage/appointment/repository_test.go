package appointment

import (
	"context"
	"regexp"
	"testing"
	"time"

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

func at(h, m int) time.Time {
	return time.Date(2025, 12, 1, h, m, 0, 0, time.UTC)
}

func TestRepository_ListPendingInRange(t *testing.T) {
	repo, mock := newRepo(t)
	from, to := domain.DayStart(at(0, 0)), domain.DayEnd(at(0, 0))
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, client_id, starts_at, price, completed, created_at, updated_at FROM appointments " +
			"WHERE completed = $1 AND starts_at BETWEEN $2 AND $3 ORDER BY starts_at ASC",
	)).WithArgs(false, from, to).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, 10, at(9, 30), 50.0, false, now, now).
			AddRow(2, 11, at(14, 0), 35.0, false, now, now))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT appointment_id, service_id FROM appointment_services WHERE appointment_id = ANY($1) " +
			"ORDER BY appointment_id ASC, service_id ASC",
	)).WillReturnRows(sqlmock.NewRows([]string{"appointment_id", "service_id"}).
		AddRow(1, 3).
		AddRow(1, 4).
		AddRow(2, 3))

	appointments, err := repo.ListPendingInRange(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, at(9, 30), appointments[0].StartsAt)
	assert.Equal(t, []int64{3, 4}, appointments[0].ServiceIDs)
	assert.Equal(t, []int64{3}, appointments[1].ServiceIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListPendingInRange_NoServices(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("FROM appointments").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(5, 10, at(10, 0), 0.0, false, now, now))
	mock.ExpectQuery("FROM appointment_services").
		WillReturnRows(sqlmock.NewRows([]string{"appointment_id", "service_id"}))

	appointments, err := repo.ListPendingInRange(context.Background(), at(0, 0), at(23, 59))
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Empty(t, appointments[0].ServiceIDs)
	assert.NotNil(t, appointments[0].ServiceIDs)
}

func TestRepository_ListPendingInRange_Error(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM appointments").WillReturnError(assert.AnError)

	_, err := repo.ListPendingInRange(context.Background(), at(0, 0), at(23, 59))
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_ExistsPendingAt(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT COUNT(*) FROM appointments WHERE completed = $1 AND starts_at = $2",
	)).WithArgs(false, at(10, 45)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsPendingAt(context.Background(), at(10, 45))
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO appointments (client_id,starts_at,price,completed) VALUES ($1,$2,$3,$4) RETURNING id, created_at, updated_at",
	)).WithArgs(int64(10), at(11, 0), 70.0, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO appointment_services (appointment_id,service_id) VALUES ($1,$2),($3,$4)",
	)).WithArgs(int64(42), int64(1), int64(42), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	created, err := repo.Create(context.Background(), &domain.Appointment{
		ClientID:   10,
		StartsAt:   at(11, 0),
		ServiceIDs: []int64{1, 2, 1},
		Price:      70,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, []int64{1, 2}, created.ServiceIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_ReplacesServices(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE appointments SET updated_at = NOW(), completed = $1 WHERE id = $2",
	)).WithArgs(true, int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM appointment_services WHERE appointment_id = $1")).
		WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO appointment_services").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 7, domain.AppointmentUpdate{
		Completed:  ptr.Ptr(true),
		ServiceIDs: []int64{5},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM appointments").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}
