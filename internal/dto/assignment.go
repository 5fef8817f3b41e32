package dto

import "github.com/noah-isme/office-space-api/internal/models"

// CreateOccupantRequest defines the payload for adding an occupant to an office.
// Dates arrive as raw text and are normalized before persistence.
type CreateOccupantRequest struct {
	Name            string  `json:"name" validate:"required"`
	AppointmentType *string `json:"appointment_type,omitempty"`
	StartDate       string  `json:"startDate,omitempty"`
	EndDate         string  `json:"endDate,omitempty"`
	Temporary       *bool   `json:"temporary,omitempty"`
}

// UpdateOccupantRequest defines the payload for editing an occupant. The office
// and appointment type are immutable through this path.
type UpdateOccupantRequest struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Temporary *bool  `json:"temporary,omitempty"`
}

// OccupantView is the wire representation of an assignment. The store id is
// exposed as occupant_id.
type OccupantView struct {
	OccupantID      int64   `json:"occupant_id"`
	FullName        string  `json:"full_name"`
	AppointmentType *string `json:"appointment_type"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	Temporary       bool    `json:"temporary"`
}

// OfficeGroup lists the occupants of a single office in insertion order.
type OfficeGroup struct {
	Occupants []OccupantView `json:"occupants"`
}

// OfficesResponse maps office IDs to their occupant groups. encoding/json
// marshals map keys in sorted order, which matches the required office
// ordering.
type OfficesResponse map[string]*OfficeGroup

// NewOccupantView converts a stored assignment into its wire representation.
func NewOccupantView(a *models.Assignment) OccupantView {
	return OccupantView{
		OccupantID:      a.ID,
		FullName:        a.FullName,
		AppointmentType: a.AppointmentType,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
		Temporary:       a.IsTemporary,
	}
}

// ImportSummary aggregates the outcome of one CSV migration run. Processed
// counts every physical row read, including the header.
type ImportSummary struct {
	RunID     string   `json:"run_id"`
	Processed int      `json:"processed"`
	Inserted  int      `json:"inserted"`
	Skipped   int      `json:"skipped"`
	Warnings  []string `json:"warnings,omitempty"`
}
