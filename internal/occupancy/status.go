package occupancy

import "fmt"

// Mode selects which temporary-status rules apply. Creation treats a present
// end date as authoritative even against an explicit temporary=false; update
// honors the explicit flag and discards the dates instead. The asymmetry is
// deliberate and matches the write paths of the live API.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Resolution is the canonical (isTemporary, startDate, endDate) triple. It is
// always internally consistent: dates are present only when Temporary is true.
type Resolution struct {
	Temporary bool
	StartDate *string
	EndDate   *string
	Warnings  []string
}

// ResolveTemporary normalizes the raw dates and derives the temporary flag.
// A nil provided flag means the caller did not supply one, in which case the
// presence of either date decides. When the resolved status is false both
// dates are forced absent regardless of what parsed.
func ResolveTemporary(provided *bool, startRaw, endRaw string, mode Mode) Resolution {
	var res Resolution

	start, startWarned := NormalizeDate(startRaw)
	if startWarned {
		res.Warnings = append(res.Warnings, fmt.Sprintf("could not parse start date %q, treating as absent", startRaw))
	}
	end, endWarned := NormalizeDate(endRaw)
	if endWarned {
		res.Warnings = append(res.Warnings, fmt.Sprintf("could not parse end date %q, treating as absent", endRaw))
	}

	if provided == nil {
		res.Temporary = start != nil || end != nil
	} else {
		res.Temporary = *provided
	}

	if mode == ModeCreate && end != nil && !res.Temporary {
		res.Temporary = true
	}

	if !res.Temporary {
		return res
	}

	res.StartDate = start
	res.EndDate = end
	return res
}
