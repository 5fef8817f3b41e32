package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// Canonical field names produced by header reconciliation.
const (
	FieldOfficeID        = "office_id"
	FieldFullName        = "full_name"
	FieldAppointmentType = "appointment_type"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
)

// ErrMissingEssentialHeader aborts ingestion before any row is read.
var ErrMissingEssentialHeader = errors.New("essential header missing")

// recognizedHeaders maps lowercase CSV column names to canonical fields.
// Unrecognized columns are ignored so exports with extra columns still load.
var recognizedHeaders = map[string]string{
	"room number":      FieldOfficeID,
	"full name":        FieldFullName,
	"appointment type": FieldAppointmentType,
	"start date":       FieldStartDate,
	"end date":         FieldEndDate,
}

// essentialFields must be matched for ingestion to proceed at all.
var essentialFields = []string{FieldOfficeID, FieldFullName}

// HeaderMap resolves canonical field names to source columns.
type HeaderMap struct {
	indexes map[string]int
	names   map[string]string
}

// Has reports whether the canonical field was matched by any header.
func (m HeaderMap) Has(field string) bool {
	_, ok := m.indexes[field]
	return ok
}

// Value extracts and trims the record cell for a canonical field. Unmatched
// fields and short records yield the empty string.
func (m HeaderMap) Value(field string, record []string) string {
	idx, ok := m.indexes[field]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// Names returns the original header text matched for each canonical field,
// as it appeared in the source file.
func (m HeaderMap) Names() map[string]string {
	out := make(map[string]string, len(m.names))
	for field, name := range m.names {
		out[field] = name
	}
	return out
}

// ReconcileHeaders maps the raw CSV header row onto canonical field names.
// Matching is case-insensitive on trimmed headers; a byte-order-mark is
// stripped from the first header before matching. Missing optional headers
// produce one warning each; a missing essential header is fatal.
func ReconcileHeaders(raw []string) (HeaderMap, []string, error) {
	m := HeaderMap{
		indexes: make(map[string]int, len(recognizedHeaders)),
		names:   make(map[string]string, len(recognizedHeaders)),
	}

	for i, header := range raw {
		original := strings.TrimSpace(header)
		if i == 0 {
			original = strings.TrimPrefix(original, "\ufeff")
		}
		key := strings.ToLower(original)

		field, ok := recognizedHeaders[key]
		if !ok {
			continue
		}
		if _, seen := m.indexes[field]; seen {
			continue
		}
		m.indexes[field] = i
		m.names[field] = original
	}

	for _, field := range essentialFields {
		if !m.Has(field) {
			return HeaderMap{}, nil, fmt.Errorf("no header matches %q: %w", field, ErrMissingEssentialHeader)
		}
	}

	var warnings []string
	for _, field := range []string{FieldAppointmentType, FieldStartDate, FieldEndDate} {
		if !m.Has(field) {
			warnings = append(warnings, fmt.Sprintf("optional header for %q not found, values will be absent", field))
		}
	}

	return m, warnings, nil
}
