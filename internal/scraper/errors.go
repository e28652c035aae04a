package scraper

import "errors"

var (
	// ErrNotMonday is returned when a requested start date is not a Monday.
	ErrNotMonday = errors.New("date must be a Monday")
	// ErrTooOld is returned when a requested start date is more than two
	// weeks before today.
	ErrTooOld = errors.New("date cannot be more than 2 weeks in the past")
	// ErrMissingTable is returned when the agenda table is absent from a
	// fetched page, which means the upstream layout changed or an error
	// page was served.
	ErrMissingTable = errors.New("table with class schedule not found on the page")
)
