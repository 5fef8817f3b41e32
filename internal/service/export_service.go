package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/office-space-api/internal/models"
	appErrors "github.com/noah-isme/office-space-api/pkg/errors"
	"github.com/noah-isme/office-space-api/pkg/export"
)

// Supported roster export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var rosterHeaders = []string{"Office", "Occupant ID", "Full Name", "Appointment Type", "Start Date", "End Date", "Temporary"}

type rosterLister interface {
	List(ctx context.Context) ([]models.Assignment, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries a rendered roster ready for download.
type ExportResult struct {
	Payload     []byte
	ContentType string
	Filename    string
}

// ExportService renders the current occupancy roster as a downloadable file.
type ExportService struct {
	repo   rosterLister
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(repo rosterLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{repo: repo, csv: csv, pdf: pdf, logger: logger}
}

// Roster builds the occupancy dataset in store order and renders it in the
// requested format.
func (s *ExportService) Roster(ctx context.Context, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: rosterHeaders, Rows: make([]map[string]string, 0, len(items))}
	for i := range items {
		dataset.Rows = append(dataset.Rows, rosterRow(&items[i]))
	}

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render roster csv")
		}
		return &ExportResult{Payload: payload, ContentType: "text/csv", Filename: "office-roster.csv"}, nil
	case ExportFormatPDF:
		payload, err := s.pdf.Render(dataset, "Office Occupancy Roster")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render roster pdf")
		}
		return &ExportResult{Payload: payload, ContentType: "application/pdf", Filename: "office-roster.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format '"+format+"'")
	}
}

func rosterRow(a *models.Assignment) map[string]string {
	row := map[string]string{
		"Office":      a.OfficeID,
		"Occupant ID": strconv.FormatInt(a.ID, 10),
		"Full Name":   a.FullName,
		"Temporary":   strconv.FormatBool(a.IsTemporary),
	}
	if a.AppointmentType != nil {
		row["Appointment Type"] = *a.AppointmentType
	}
	if a.StartDate != nil {
		row["Start Date"] = *a.StartDate
	}
	if a.EndDate != nil {
		row["End Date"] = *a.EndDate
	}
	return row
}
