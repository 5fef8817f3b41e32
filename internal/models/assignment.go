package models

import "time"

// Assignment binds a person to an office, optionally bounded by a date range.
// Dates are stored as canonical YYYY-MM-DD text and are present only while
// IsTemporary is true.
type Assignment struct {
	ID              int64     `db:"id" json:"id"`
	OfficeID        string    `db:"office_id" json:"office_id"`
	FullName        string    `db:"full_name" json:"full_name"`
	AppointmentType *string   `db:"appointment_type" json:"appointment_type,omitempty"`
	StartDate       *string   `db:"start_date" json:"start_date,omitempty"`
	EndDate         *string   `db:"end_date" json:"end_date,omitempty"`
	IsTemporary     bool      `db:"is_temporary" json:"is_temporary"`
	CreatedAt       time.Time `db:"timestamp" json:"timestamp"`
}
