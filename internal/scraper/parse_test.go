package scraper

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		startMin int
		duration *int
		ok       bool
	}{
		{"spaced range", "06:00 - 07:00", 360, intPtr(60), true},
		{"tight range", "06:00-07:00", 360, intPtr(60), true},
		{"ninety minutes", "18:00 - 19:30", 1080, intPtr(90), true},
		{"end before start", "07:00 - 06:00", 420, intPtr(-60), true},
		{"start only", "06:00", 360, nil, true},
		{"garbage", "invalid", 0, nil, false},
		{"empty", "", 0, nil, false},
		{"three parts", "06:00-07:00-08:00", 360, nil, true},
		{"non-numeric minutes", "06:xx - 07:00", 0, nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, duration, ok := ParseTimeRange(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if !tc.ok {
				return
			}
			if start != tc.startMin {
				t.Errorf("start = %d, want %d", start, tc.startMin)
			}
			if (duration == nil) != (tc.duration == nil) {
				t.Fatalf("duration = %v, want %v", duration, tc.duration)
			}
			if duration != nil && *duration != *tc.duration {
				t.Errorf("duration = %d, want %d", *duration, *tc.duration)
			}
		})
	}
}

func TestParseAgendaDate(t *testing.T) {
	d, ok := ParseAgendaDate("Pn, 2025-11-24")
	if !ok {
		t.Fatal("expected a date")
	}
	if want := time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC); !d.Equal(want) {
		t.Errorf("date = %v, want %v", d, want)
	}

	if _, ok := ParseAgendaDate("No date here"); ok {
		t.Error("expected no date in plain text")
	}
	if _, ok := ParseAgendaDate(""); ok {
		t.Error("expected no date in empty string")
	}
}

func TestValidMondayDefaultsToCurrentWeek(t *testing.T) {
	// 2025-11-11 is a Tuesday; its week starts 2025-11-10.
	today := time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC)
	got, err := ValidMonday(nil, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("monday = %v, want %v", got, want)
	}
}

func TestValidMondayAcceptsRecentMonday(t *testing.T) {
	today := time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	got, err := ValidMonday(&monday, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(monday) {
		t.Errorf("monday = %v, want %v", got, monday)
	}
}

func TestValidMondayRejectsNonMonday(t *testing.T) {
	today := time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC)
	tuesday := today
	if _, err := ValidMonday(&tuesday, today); !errors.Is(err, ErrNotMonday) {
		t.Errorf("err = %v, want ErrNotMonday", err)
	}
}

func TestValidMondayRejectsTooOld(t *testing.T) {
	// today − 14 days = 2025-10-28, so 2025-10-27 is one day too far back.
	today := time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC)
	old := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	if _, err := ValidMonday(&old, today); !errors.Is(err, ErrTooOld) {
		t.Errorf("err = %v, want ErrTooOld", err)
	}
}

func TestValidMondayBoundaryExactlyTwoWeeksBack(t *testing.T) {
	// 2025-11-10 is a Monday; exactly 14 days earlier is 2025-10-27,
	// also a Monday, and still allowed.
	today := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	boundary := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	got, err := ValidMonday(&boundary, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(boundary) {
		t.Errorf("monday = %v, want %v", got, boundary)
	}
}

func intPtr(v int) *int { return &v }
