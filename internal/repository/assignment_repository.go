package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/office-space-api/internal/ingest"
	"github.com/noah-isme/office-space-api/internal/models"
	appErrors "github.com/noah-isme/office-space-api/pkg/errors"
)

const assignmentColumns = "id, office_id, full_name, appointment_type, start_date, end_date, is_temporary, timestamp"

// queryObserver receives per-query timings.
type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// AssignmentRepository provides persistence for office assignment records.
type AssignmentRepository struct {
	db      *sqlx.DB
	metrics queryObserver
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// WithMetrics attaches a query timing observer and returns the repository.
func (r *AssignmentRepository) WithMetrics(obs queryObserver) *AssignmentRepository {
	r.metrics = obs
	return r
}

func (r *AssignmentRepository) observe(label string, start time.Time) {
	if r.metrics != nil {
		r.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

// Ready probes the assignment table. A missing table maps to StoreUnavailable
// so callers can tell "never initialized" apart from a transient failure.
func (r *AssignmentRepository) Ready(ctx context.Context) error {
	defer r.observe("ready_probe", time.Now())

	var one int
	err := r.db.GetContext(ctx, &one, `SELECT 1 FROM office_assignments LIMIT 1`)
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return r.storeError(err, "probe office_assignments")
}

// InitSchema drops and recreates the assignment table and its index.
func (r *AssignmentRepository) InitSchema(ctx context.Context) error {
	statements := []string{
		`DROP TABLE IF EXISTS office_assignments`,
		`CREATE TABLE office_assignments (
			id BIGSERIAL PRIMARY KEY,
			office_id TEXT NOT NULL,
			full_name TEXT NOT NULL,
			appointment_type TEXT,
			start_date TEXT,
			end_date TEXT,
			is_temporary BOOLEAN DEFAULT FALSE,
			timestamp TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_office_id ON office_assignments (office_id)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "initialize schema")
		}
	}
	return nil
}

// Insert persists a new assignment and returns its store-assigned id.
func (r *AssignmentRepository) Insert(ctx context.Context, a *models.Assignment) (int64, error) {
	const query = `INSERT INTO office_assignments
	(office_id, full_name, appointment_type, start_date, end_date, is_temporary)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`

	defer r.observe("insert_assignment", time.Now())

	var id int64
	if err := r.db.GetContext(ctx, &id, query, a.OfficeID, a.FullName, a.AppointmentType, a.StartDate, a.EndDate, a.IsTemporary); err != nil {
		return 0, r.storeError(err, "insert assignment")
	}
	a.ID = id
	return id, nil
}

// List returns every assignment ordered by office then insertion order.
func (r *AssignmentRepository) List(ctx context.Context) ([]models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM office_assignments ORDER BY office_id, id`, assignmentColumns)

	defer r.observe("list_assignments", time.Now())

	var items []models.Assignment
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, r.storeError(err, "list assignments")
	}
	return items, nil
}

// FindByID fetches one assignment; a missing row yields (nil, nil).
func (r *AssignmentRepository) FindByID(ctx context.Context, id int64) (*models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s FROM office_assignments WHERE id = $1`, assignmentColumns)

	defer r.observe("get_assignment", time.Now())

	var item models.Assignment
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, r.storeError(err, "get assignment")
	}
	return &item, nil
}

// Exists reports whether an assignment with the given id is stored.
func (r *AssignmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM office_assignments WHERE id = $1)`

	defer r.observe("check_assignment", time.Now())

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, r.storeError(err, "check assignment")
	}
	return exists, nil
}

// Update replaces the mutable fields of an assignment. It reports whether a
// row was affected.
func (r *AssignmentRepository) Update(ctx context.Context, a *models.Assignment) (bool, error) {
	const query = `UPDATE office_assignments
	SET full_name = $1, start_date = $2, end_date = $3, is_temporary = $4
	WHERE id = $5`

	defer r.observe("update_assignment", time.Now())

	result, err := r.db.ExecContext(ctx, query, a.FullName, a.StartDate, a.EndDate, a.IsTemporary, a.ID)
	if err != nil {
		return false, r.storeError(err, "update assignment")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, r.storeError(err, "update assignment")
	}
	return affected > 0, nil
}

// Delete removes an assignment permanently. It reports whether a row was
// affected; deleted ids are never reused.
func (r *AssignmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM office_assignments WHERE id = $1`

	defer r.observe("delete_assignment", time.Now())

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, r.storeError(err, "delete assignment")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, r.storeError(err, "delete assignment")
	}
	return affected > 0, nil
}

// BeginImport opens the batch transaction used by the CSV migration pipeline.
func (r *AssignmentRepository) BeginImport(ctx context.Context) (ingest.ImportTx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, r.storeError(err, "begin import transaction")
	}
	return &importTx{tx: tx}, nil
}

type importTx struct {
	tx *sqlx.Tx
}

// Insert adds one row inside the batch. Each row runs under a savepoint: a
// failed insert would otherwise poison the whole transaction and make every
// following row fail too.
func (t *importTx) Insert(ctx context.Context, a *models.Assignment) (int64, error) {
	const query = `INSERT INTO office_assignments
	(office_id, full_name, appointment_type, start_date, end_date, is_temporary)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`

	if _, err := t.tx.ExecContext(ctx, `SAVEPOINT import_row`); err != nil {
		return 0, fmt.Errorf("savepoint: %w", err)
	}

	var id int64
	if err := t.tx.GetContext(ctx, &id, query, a.OfficeID, a.FullName, a.AppointmentType, a.StartDate, a.EndDate, a.IsTemporary); err != nil {
		_, _ = t.tx.ExecContext(ctx, `ROLLBACK TO SAVEPOINT import_row`)
		return 0, fmt.Errorf("insert assignment: %w", err)
	}

	if _, err := t.tx.ExecContext(ctx, `RELEASE SAVEPOINT import_row`); err != nil {
		return 0, fmt.Errorf("release savepoint: %w", err)
	}
	a.ID = id
	return id, nil
}

func (t *importTx) Commit() error {
	return t.tx.Commit()
}

func (t *importTx) Rollback() error {
	return t.tx.Rollback()
}

func (r *AssignmentRepository) storeError(err error, op string) error {
	if isUndefinedTable(err) {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, fmt.Sprintf("%s failed", op))
}

// isUndefinedTable detects Postgres error 42P01 (undefined_table).
func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "42P01"
}
