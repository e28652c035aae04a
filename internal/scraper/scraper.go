package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/crossfit-rzeszow/timetable-api/internal/model"
)

// Scraper fetches and parses the gym's weekly agenda pages.
type Scraper struct {
	client  *http.Client
	baseURL string
	log     zerolog.Logger
}

// New creates a Scraper for the given site. baseURL must be absolute;
// a trailing slash is stripped.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Scraper {
	return &Scraper{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With().Str("component", "scraper").Logger(),
	}
}

// agendaURL builds the weekly agenda page URL for the given Monday.
func (s *Scraper) agendaURL(monday time.Time) string {
	q := url.Values{}
	q.Set("day", monday.Format("2006-01-02"))
	q.Set("view", "Agenda")
	return s.baseURL + "/kalendarz-zajec?" + q.Encode()
}

// fetchDocument GETs the URL and parses the body as HTML.
func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}
	return doc, nil
}

// FetchTimetable fetches one week's agenda, anchored at the given Monday,
// and returns its class records. The location value, when non-nil, is
// attached to every record unchanged.
func (s *Scraper) FetchTimetable(ctx context.Context, monday time.Time, location *string) ([]model.ClassRecord, error) {
	pageURL := s.agendaURL(monday)
	s.log.Debug().Str("url", pageURL).Msg("Fetching weekly agenda")

	doc, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	records, err := s.parseAgenda(doc, monday, location, pageURL)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("monday", monday.Format("2006-01-02")).
		Int("classes", len(records)).
		Msg("Parsed weekly agenda")
	return records, nil
}

// FetchWeeks fetches `weeks` consecutive weekly agendas starting at monday,
// concurrently, and returns their records concatenated in week order and
// sorted. No location enrichment is performed.
func (s *Scraper) FetchWeeks(ctx context.Context, monday time.Time, weeks int) ([]model.ClassRecord, error) {
	return s.fetchWeeks(ctx, monday, weeks, nil, false)
}

// FetchWeeksWithLocation behaves like FetchWeeks but also resolves the venue
// address: pinned is used as-is when non-nil, otherwise the address is
// scraped from the site once, concurrently with the weekly fetches. Address
// resolution is best-effort; its failure never fails the request.
func (s *Scraper) FetchWeeksWithLocation(ctx context.Context, monday time.Time, weeks int, pinned *string) ([]model.ClassRecord, error) {
	return s.fetchWeeks(ctx, monday, weeks, pinned, true)
}

func (s *Scraper) fetchWeeks(ctx context.Context, monday time.Time, weeks int, location *string, resolve bool) ([]model.ClassRecord, error) {
	results := make([][]model.ClassRecord, weeks)

	g, gctx := errgroup.WithContext(ctx)

	if resolve && location == nil {
		g.Go(func() error {
			// Failures are absorbed inside FetchLocation; the weekly
			// fetches must not be cancelled over a missing address.
			location = s.FetchLocation(gctx)
			return nil
		})
	}

	for i := 0; i < weeks; i++ {
		i := i
		g.Go(func() error {
			records, err := s.FetchTimetable(gctx, monday.AddDate(0, 0, 7*i), nil)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []model.ClassRecord
	for _, week := range results {
		merged = append(merged, week...)
	}
	for i := range merged {
		merged[i].Location = location
	}
	sortRecords(merged)
	return merged, nil
}

// sortRecords orders records ascending by (start, event name, coach).
func sortRecords(records []model.ClassRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.EventName != b.EventName {
			return a.EventName < b.EventName
		}
		return a.Coach < b.Coach
	})
}
