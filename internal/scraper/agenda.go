package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/crossfit-rzeszow/timetable-api/internal/model"
)

const minutesPerDay = 24 * 60

// parseAgenda walks the agenda table and reconstructs one class record per
// row. The table compresses each day with a rowspan on its first cell: only
// the first row of a day carries the date, subsequent rows inherit it. The
// walker carries that date as its only piece of state. A header row whose
// date text does not parse is skipped without touching the carried date, so
// later continuation rows still attach to the last good header rather than
// being dropped or mis-attributed.
//
// Rows are dropped silently when the start time is unparseable, when no
// event name is present, or when no date header has been seen yet. Dates
// outside the requested week are dropped at emission time. A missing table
// is fatal: it means the upstream page changed shape or an error page came
// back.
func (s *Scraper) parseAgenda(doc *goquery.Document, monday time.Time, location *string, pageURL string) ([]model.ClassRecord, error) {
	table := doc.Find("table.calendar_table_agenda").First()
	if table.Length() == 0 {
		return nil, ErrMissingTable
	}

	weekEnd := monday.AddDate(0, 0, 6)

	var currentDate *time.Time
	var records []model.ClassRecord

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		var timeCell, contentCell *goquery.Selection
		if _, hasRowspan := cells.Eq(0).Attr("rowspan"); hasRowspan {
			// Date-header row: first cell starts a new day block.
			d, ok := ParseAgendaDate(strings.TrimSpace(cells.Eq(0).Text()))
			if !ok {
				return
			}
			currentDate = &d
			if cells.Length() < 3 {
				return
			}
			timeCell, contentCell = cells.Eq(1), cells.Eq(2)
		} else {
			if cells.Length() < 2 {
				return
			}
			timeCell, contentCell = cells.Eq(0), cells.Eq(1)
		}

		if currentDate == nil {
			return
		}
		if currentDate.Before(monday) || currentDate.After(weekEnd) {
			return
		}

		startMin, durationMin, ok := ParseTimeRange(strings.TrimSpace(timeCell.Text()))
		if !ok || startMin < 0 || startMin >= minutesPerDay {
			return
		}
		start := currentDate.Add(time.Duration(startMin) * time.Minute)

		nameElem := contentCell.Find("p.event_name").First()
		if nameElem.Length() == 0 {
			return
		}
		eventName := strings.TrimSpace(nameElem.Text())
		if eventName == "" {
			return
		}

		// The coach is the first text in the content cell that is not
		// the event name itself. Absence yields an empty string.
		var coach string
		for _, text := range strippedStrings(contentCell) {
			if text == eventName {
				continue
			}
			coach = text
			break
		}

		sourceURL := pageURL
		if href, exists := contentCell.Find("a.schedule-agenda-link").First().Attr("href"); exists {
			sourceURL = s.baseURL + href
		}

		records = append(records, model.ClassRecord{
			Start:       start,
			EventName:   eventName,
			Coach:       coach,
			DurationMin: durationMin,
			SourceURL:   sourceURL,
			Location:    location,
		})
	})

	sortRecords(records)
	return records, nil
}

// strippedStrings returns the trimmed, non-empty text nodes under the
// selection in document order.
func strippedStrings(sel *goquery.Selection) []string {
	var out []string
	for _, node := range sel.Nodes {
		var walk func(*html.Node)
		walk = func(n *html.Node) {
			if n.Type == html.TextNode {
				if text := strings.TrimSpace(n.Data); text != "" {
					out = append(out, text)
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
		walk(node)
	}
	return out
}
