package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/office-space-api/internal/dto"
	"github.com/noah-isme/office-space-api/internal/models"
	"github.com/noah-isme/office-space-api/internal/occupancy"
	appErrors "github.com/noah-isme/office-space-api/pkg/errors"
)

// Store is the persistence surface the pipeline writes through.
type Store interface {
	Ready(ctx context.Context) error
	BeginImport(ctx context.Context) (ImportTx, error)
}

// ImportTx batches inserts into one transaction committed after the last row.
type ImportTx interface {
	Insert(ctx context.Context, a *models.Assignment) (int64, error)
	Commit() error
	Rollback() error
}

// Pipeline migrates legacy assignment CSV exports into the assignment store.
// One bad row never aborts the batch; fatal conditions (missing store, missing
// essential headers, failed commit) abort it entirely.
type Pipeline struct {
	store  Store
	logger *zap.Logger
}

// NewPipeline constructs a Pipeline.
func NewPipeline(store Store, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{store: store, logger: logger}
}

// Run executes a single-pass migration of the CSV source. The returned summary
// counts every physical row read, the header included; data rows are reported
// by physical row number starting at 2.
func (p *Pipeline) Run(ctx context.Context, src io.Reader) (dto.ImportSummary, error) {
	summary := dto.ImportSummary{RunID: uuid.NewString()}
	log := p.logger.With(zap.String("run_id", summary.RunID))

	if err := p.store.Ready(ctx); err != nil {
		return summary, err
	}

	reader := csv.NewReader(stripBOM(src))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return summary, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "could not read CSV header row")
	}
	summary.Processed++

	headers, headerWarnings, err := ReconcileHeaders(header)
	if err != nil {
		return summary, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "CSV is missing essential headers")
	}
	log.Info("headers reconciled", zap.Any("matched", headers.Names()))
	for _, w := range headerWarnings {
		log.Warn("header warning", zap.String("warning", w))
	}
	summary.Warnings = append(summary.Warnings, headerWarnings...)

	tx, err := p.store.BeginImport(ctx)
	if err != nil {
		return summary, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	rowNum := 1
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		rowNum++
		summary.Processed++
		if readErr != nil {
			summary.Skipped++
			log.Warn("skipping malformed row", zap.Int("row", rowNum), zap.Error(readErr))
			continue
		}

		officeID := headers.Value(FieldOfficeID, record)
		fullName := headers.Value(FieldFullName, record)
		if officeID == "" || fullName == "" {
			summary.Skipped++
			log.Warn("skipping row with missing essential data", zap.Int("row", rowNum))
			continue
		}

		res := occupancy.ResolveTemporary(nil,
			headers.Value(FieldStartDate, record),
			headers.Value(FieldEndDate, record),
			occupancy.ModeCreate,
		)
		for _, w := range res.Warnings {
			warning := fmt.Sprintf("row %d: %s", rowNum, w)
			log.Warn("date warning", zap.Int("row", rowNum), zap.String("warning", w))
			summary.Warnings = append(summary.Warnings, warning)
		}

		assignment := &models.Assignment{
			OfficeID:    officeID,
			FullName:    fullName,
			StartDate:   res.StartDate,
			EndDate:     res.EndDate,
			IsTemporary: res.Temporary,
		}
		if appt := headers.Value(FieldAppointmentType, record); appt != "" {
			assignment.AppointmentType = &appt
		}

		if _, err := tx.Insert(ctx, assignment); err != nil {
			summary.Skipped++
			log.Warn("skipping row after insert failure", zap.Int("row", rowNum), zap.Error(err))
			continue
		}
		summary.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return summary, appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, "failed to commit migration batch")
	}
	committed = true

	log.Info("migration complete",
		zap.Int("processed", summary.Processed),
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

// stripBOM removes a leading UTF-8 byte-order-mark from the raw stream before
// any header splitting happens.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(3); err == nil && bytes.Equal(lead, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}
	return br
}
