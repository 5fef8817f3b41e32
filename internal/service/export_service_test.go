package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/office-space-api/internal/models"
	appErrors "github.com/noah-isme/office-space-api/pkg/errors"
)

type rosterListerStub struct {
	items []models.Assignment
	err   error
}

func (s *rosterListerStub) List(ctx context.Context) ([]models.Assignment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func strPtr(s string) *string { return &s }

func TestExportServiceRosterCSV(t *testing.T) {
	repo := &rosterListerStub{items: []models.Assignment{
		{ID: 2, OfficeID: "A1", FullName: "Grace Hopper", AppointmentType: strPtr("Faculty")},
		{ID: 1, OfficeID: "B2", FullName: "Ada Lovelace", StartDate: strPtr("2024-01-01"), EndDate: strPtr("2024-06-01"), IsTemporary: true},
	}}
	svc := NewExportService(repo, nil, nil, nil)

	result, err := svc.Roster(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "office-roster.csv", result.Filename)

	body := string(result.Payload)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Office,Occupant ID,Full Name,Appointment Type,Start Date,End Date,Temporary", lines[0])
	assert.Contains(t, lines[1], "A1,2,Grace Hopper,Faculty")
	assert.Contains(t, lines[2], "B2,1,Ada Lovelace,,2024-01-01,2024-06-01,true")
}

func TestExportServiceRosterDefaultsToCSV(t *testing.T) {
	svc := NewExportService(&rosterListerStub{}, nil, nil, nil)

	result, err := svc.Roster(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
}

func TestExportServiceRosterPDF(t *testing.T) {
	repo := &rosterListerStub{items: []models.Assignment{
		{ID: 1, OfficeID: "A1", FullName: "Ada Lovelace"},
	}}
	svc := NewExportService(repo, nil, nil, nil)

	result, err := svc.Roster(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Payload), "%PDF"))
}

func TestExportServiceRosterUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&rosterListerStub{}, nil, nil, nil)

	_, err := svc.Roster(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRosterStoreErrorPropagates(t *testing.T) {
	svc := NewExportService(&rosterListerStub{err: appErrors.ErrStoreUnavailable}, nil, nil, nil)

	_, err := svc.Roster(context.Background(), "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStoreUnavailable.Code, appErrors.FromError(err).Code)
}
