package model

import "time"

// ClassRecord is one scheduled class instance parsed from the agenda page.
// Start is naive local time; the venue's fixed zone is applied at render
// time. A nil DurationMin means the agenda row had no usable time range and
// the default duration applies when the calendar is generated.
type ClassRecord struct {
	Start       time.Time `json:"date"`
	EventName   string    `json:"event_name"`
	Coach       string    `json:"coach"`
	DurationMin *int      `json:"duration_min"`
	SourceURL   string    `json:"source_url"`
	Location    *string   `json:"location"`
}
