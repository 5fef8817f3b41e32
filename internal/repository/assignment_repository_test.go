package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/office-space-api/internal/models"
	appErrors "github.com/noah-isme/office-space-api/pkg/errors"
)

func newAssignmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func strPtr(s string) *string { return &s }

func TestAssignmentRepositoryInsertReturnsID(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO office_assignments")).
		WithArgs("A1", "Ada Lovelace", nil, "2024-01-01", nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	a := &models.Assignment{
		OfficeID:    "A1",
		FullName:    "Ada Lovelace",
		StartDate:   strPtr("2024-01-01"),
		IsTemporary: true,
	}
	id, err := repo.Insert(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, int64(7), a.ID)
}

func TestAssignmentRepositoryListOrdered(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "office_id", "full_name", "appointment_type", "start_date", "end_date", "is_temporary", "timestamp"}).
		AddRow(int64(2), "A1", "Grace Hopper", sql.NullString{String: "Faculty", Valid: true}, nil, nil, false, now).
		AddRow(int64(3), "A1", "Katherine Johnson", sql.NullString{}, nil, nil, false, now).
		AddRow(int64(1), "B2", "Ada Lovelace", sql.NullString{}, sql.NullString{String: "2024-01-01", Valid: true}, sql.NullString{String: "2024-06-01", Valid: true}, true, now)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY office_id, id")).
		WillReturnRows(rows)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "A1", items[0].OfficeID)
	assert.Equal(t, int64(2), items[0].ID)
	require.NotNil(t, items[0].AppointmentType)
	assert.Equal(t, "Faculty", *items[0].AppointmentType)
	assert.Equal(t, "B2", items[2].OfficeID)
	assert.True(t, items[2].IsTemporary)
}

func TestAssignmentRepositoryFindByIDNone(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	item, err := repo.FindByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestAssignmentRepositoryUpdateAffectsRow(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE office_assignments")).
		WithArgs("New Name", nil, nil, false, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.Update(context.Background(), &models.Assignment{ID: 4, FullName: "New Name"})
	require.NoError(t, err)
	assert.True(t, updated)
}

func TestAssignmentRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM office_assignments WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAssignmentRepositoryExists(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAssignmentRepositoryReadyEmptyTable(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM office_assignments LIMIT 1")).
		WillReturnError(sql.ErrNoRows)

	assert.NoError(t, repo.Ready(context.Background()))
}

func TestAssignmentRepositoryReadyUndefinedTable(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM office_assignments LIMIT 1")).
		WillReturnError(&pq.Error{Code: "42P01"})

	err := repo.Ready(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, appErrors.FromError(err).Code)
}

func TestAssignmentRepositoryReadyTransientFailure(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM office_assignments LIMIT 1")).
		WillReturnError(errors.New("connection reset"))

	err := repo.Ready(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStore.Code, appErrors.FromError(err).Code)
}

type queryObserverStub struct {
	labels []string
}

func (o *queryObserverStub) ObserveDBQuery(label string, duration time.Duration) {
	o.labels = append(o.labels, label)
}

func TestAssignmentRepositoryObservesQueryTimings(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	obs := &queryObserverStub{}
	repo := NewAssignmentRepository(db).WithMetrics(obs)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY office_id, id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "office_id", "full_name", "appointment_type", "start_date", "end_date", "is_temporary", "timestamp"}))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM office_assignments WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := repo.List(context.Background())
	require.NoError(t, err)
	_, err = repo.Delete(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"list_assignments", "delete_assignment"}, obs.labels)
}

func TestAssignmentRepositoryImportTx(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SAVEPOINT import_row")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO office_assignments")).
		WithArgs("A1", "Ada Lovelace", nil, nil, nil, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(regexp.QuoteMeta("RELEASE SAVEPOINT import_row")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := repo.BeginImport(context.Background())
	require.NoError(t, err)

	id, err := tx.Insert(context.Background(), &models.Assignment{OfficeID: "A1", FullName: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryImportTxRowFailureRollsBackSavepoint(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SAVEPOINT import_row")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO office_assignments")).
		WillReturnError(errors.New("value too long"))
	mock.ExpectExec(regexp.QuoteMeta("ROLLBACK TO SAVEPOINT import_row")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := repo.BeginImport(context.Background())
	require.NoError(t, err)

	_, err = tx.Insert(context.Background(), &models.Assignment{OfficeID: "A1", FullName: "x"})
	require.Error(t, err)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
