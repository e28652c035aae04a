package ical

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/crossfit-rzeszow/timetable-api/internal/model"
)

const (
	prodID   = "-//CrossFit Timetable//crossfit-timetable//"
	timezone = "Europe/Warsaw"
	// uidSuffix makes re-rendered identifiers stable so calendar clients
	// deduplicate classes on re-import.
	uidSuffix = "-crossfit-timetable"
	// appleRadius is the geofence radius in meters for the structured
	// location extension.
	appleRadius = "49.91"

	icalLocalFormat = "20060102T150405"
)

// Config carries the venue constants the renderer embeds in every calendar.
type Config struct {
	Title              string
	FallbackAddress    string
	Latitude           float64
	Longitude          float64
	DefaultDurationMin int
}

// Exporter renders class records as an iCalendar document.
type Exporter struct {
	cfg Config
}

// NewExporter creates an Exporter with the given venue configuration.
func NewExporter(cfg Config) *Exporter {
	return &Exporter{cfg: cfg}
}

// Generate renders the records into calendar file bytes. Empty input yields
// empty bytes, which callers present as "nothing to export". All event times
// are emitted as local Europe/Warsaw values qualified by the embedded
// timezone definition, so clients render them correctly without consulting
// their own zone database.
func (e *Exporter) Generate(records []model.ClassRecord) []byte {
	if len(records) == 0 {
		return nil
	}

	cal := ics.NewCalendar()
	cal.SetProductId(prodID)
	cal.SetVersion("2.0")
	cal.SetName(e.cfg.Title + " Timetable")
	addWarsawTimezone(cal)

	for _, record := range records {
		end := record.Start.Add(time.Duration(e.durationMin(record)) * time.Minute)

		event := cal.AddEvent(eventUID(record))
		event.SetSummary(ics.ToText("CrossFit: " + record.EventName))
		event.SetProperty(ics.ComponentPropertyDtStart, record.Start.Format(icalLocalFormat), withTZID())
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icalLocalFormat), withTZID())

		location := e.cfg.FallbackAddress
		if record.Location != nil {
			location = *record.Location
		}
		event.SetLocation(ics.ToText(location))
		event.SetDescription(ics.ToText(fmt.Sprintf("CrossFit Class\nCoach: %s\nSource: %s", record.Coach, record.SourceURL)))
		e.addStructuredLocation(event, location)
	}

	return []byte(cal.Serialize())
}

// durationMin resolves a record's duration, applying the configured default
// when the agenda carried none.
func (e *Exporter) durationMin(record model.ClassRecord) int {
	if record.DurationMin != nil {
		return *record.DurationMin
	}
	return e.cfg.DefaultDurationMin
}

// eventUID derives a stable identifier from the start instant, event name
// and coach, so the same logical class always gets the same UID.
func eventUID(record model.ClassRecord) string {
	return record.Start.Format("2006-01-02T15:04:05") + "-" +
		strings.ReplaceAll(record.EventName, " ", "-") + "-" +
		strings.ReplaceAll(record.Coach, " ", "-") + uidSuffix
}

// addStructuredLocation attaches the X-APPLE-STRUCTURED-LOCATION extension:
// a geo URI with the venue coordinates plus address, title and radius
// parameters. Apple clients use it for map previews and travel-time alerts.
func (e *Exporter) addStructuredLocation(event *ics.VEvent, location string) {
	geoURI := fmt.Sprintf("geo:%g,%g", e.cfg.Latitude, e.cfg.Longitude)
	event.SetProperty(
		ics.ComponentProperty("X-APPLE-STRUCTURED-LOCATION"),
		geoURI,
		ics.WithValue("URI"),
		&ics.KeyValues{Key: "X-ADDRESS", Value: []string{strings.ReplaceAll(location, ", ", "\\n")}},
		&ics.KeyValues{Key: "X-TITLE", Value: []string{e.cfg.Title}},
		&ics.KeyValues{Key: "X-APPLE-RADIUS", Value: []string{appleRadius}},
	)
}

// withTZID qualifies a local date-time property with the venue timezone.
func withTZID() ics.PropertyParameter {
	return &ics.KeyValues{Key: string(ics.ParameterTzid), Value: []string{timezone}}
}

// addWarsawTimezone embeds a hand-built VTIMEZONE for Europe/Warsaw: CET
// (+01:00) starting the last Sunday of October and CEST (+02:00) starting
// the last Sunday of March. The block is static; it only exists so
// date-aware clients resolve the TZID without a zone database.
func addWarsawTimezone(cal *ics.Calendar) {
	tz := cal.AddTimezone(timezone)

	standard := tz.AddStandard()
	standard.SetProperty(ics.ComponentProperty(ics.PropertyTzname), "CET")
	standard.SetProperty(ics.ComponentPropertyDtStart, "19701025T030000")
	standard.SetProperty(ics.ComponentPropertyRrule, "FREQ=YEARLY;BYMONTH=10;BYDAY=-1SU")
	standard.SetProperty(ics.ComponentProperty(ics.PropertyTzoffsetfrom), "+0200")
	standard.SetProperty(ics.ComponentProperty(ics.PropertyTzoffsetto), "+0100")

	daylight := &ics.Daylight{}
	daylight.SetProperty(ics.ComponentProperty(ics.PropertyTzname), "CEST")
	daylight.SetProperty(ics.ComponentPropertyDtStart, "19700329T020000")
	daylight.SetProperty(ics.ComponentPropertyRrule, "FREQ=YEARLY;BYMONTH=3;BYDAY=-1SU")
	daylight.SetProperty(ics.ComponentProperty(ics.PropertyTzoffsetfrom), "+0100")
	daylight.SetProperty(ics.ComponentProperty(ics.PropertyTzoffsetto), "+0200")
	tz.Components = append(tz.Components, daylight)
}
