package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Labels as they appear on the site's contact section.
const (
	contactHeading = "Kontakt"
	venueHeading   = "CrossFit Rzeszów 2.0"
	countrySuffix  = "Poland"
)

// FetchLocation scrapes the venue's postal address from the site's contact
// section. It is best-effort: any transport or extraction failure yields nil
// and the caller falls back to a configured address.
func (s *Scraper) FetchLocation(ctx context.Context) *string {
	doc, err := s.fetchDocument(ctx, s.baseURL)
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to fetch location page")
		return nil
	}
	return resolveLocation(doc)
}

// resolveLocation extracts the address lines from the first <address> block:
// empty lines, the contact heading, and the venue name line are dropped, the
// rest joined with ", ", and the country appended when missing.
func resolveLocation(doc *goquery.Document) *string {
	address := doc.Find("address").First()
	if address.Length() == 0 {
		return nil
	}

	var lines []string
	address.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if text == "" || text == contactHeading || text == venueHeading {
			return
		}
		lines = append(lines, text)
	})

	if len(lines) == 0 {
		return nil
	}

	joined := strings.Join(lines, ", ")
	if !strings.Contains(joined, countrySuffix) {
		joined += ", " + countrySuffix
	}
	return &joined
}
