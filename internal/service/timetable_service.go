package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/crossfit-rzeszow/timetable-api/internal/ical"
	"github.com/crossfit-rzeszow/timetable-api/internal/model"
	"github.com/crossfit-rzeszow/timetable-api/internal/scraper"
)

// TimetableService glues the agenda scraper and the calendar exporter
// behind the two API surfaces. The current time is injected so week
// anchoring stays deterministic under test.
type TimetableService struct {
	scraper  *scraper.Scraper
	exporter *ical.Exporter
	// pinnedLocation, when non-empty, replaces the per-request address
	// scrape on the calendar path.
	pinnedLocation string
	now            func() time.Time
	log            zerolog.Logger
}

// NewTimetableService wires the service. pinnedLocation may be empty.
func NewTimetableService(s *scraper.Scraper, e *ical.Exporter, pinnedLocation string, now func() time.Time, log zerolog.Logger) *TimetableService {
	if now == nil {
		now = time.Now
	}
	return &TimetableService{
		scraper:        s,
		exporter:       e,
		pinnedLocation: pinnedLocation,
		now:            now,
		log:            log.With().Str("component", "timetable_service").Logger(),
	}
}

// today returns the injected now truncated to a date.
func (s *TimetableService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// GetTimetable returns the class records for the requested number of weeks.
// The weeks are anchored at start when given (it must be a recent Monday),
// else at the current week's Monday. No location enrichment is performed on
// the JSON path.
func (s *TimetableService) GetTimetable(ctx context.Context, weeks int, start *time.Time) ([]model.ClassRecord, error) {
	monday, err := scraper.ValidMonday(start, s.today())
	if err != nil {
		return nil, err
	}
	records, err := s.scraper.FetchWeeks(ctx, monday, weeks)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("weeks", weeks).Int("classes", len(records)).Msg("Fetched timetable")
	return records, nil
}

// GenerateCalendar fetches the requested weeks with address enrichment and
// renders them as calendar bytes. Empty bytes mean there was nothing to
// export.
func (s *TimetableService) GenerateCalendar(ctx context.Context, weeks int, start *time.Time) ([]byte, error) {
	monday, err := scraper.ValidMonday(start, s.today())
	if err != nil {
		return nil, err
	}

	var pinned *string
	if s.pinnedLocation != "" {
		pinned = &s.pinnedLocation
	}

	records, err := s.scraper.FetchWeeksWithLocation(ctx, monday, weeks, pinned)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("weeks", weeks).Int("classes", len(records)).Msg("Rendering calendar")
	return s.exporter.Generate(records), nil
}
