package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return d
}

func TestParseDateRejectsOutOfRangeComponents(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"2024-13-40", "2024-02-30", "not-a-date", "2024-1-1", ""} {
		if _, err := ParseDate(raw); !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("expected ErrInvalidDateFormat for %q, got %v", raw, err)
		}
	}
	if _, err := ParseDate("2024-02-29"); err != nil {
		t.Fatalf("leap day should parse, got %v", err)
	}
}

func TestComputeAvailabilityDayCountInclusive(t *testing.T) {
	t.Parallel()

	start := mustDate(t, "2024-01-01")
	end := mustDate(t, "2024-01-28")
	avail, err := ComputeAvailability(start, end, nil, 1)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}
	if len(avail.Days) != 28 {
		t.Fatalf("expected 28 days inclusive, got %d", len(avail.Days))
	}
	if !avail.Days[0].Date.Equal(start) || !avail.Days[27].Date.Equal(end) {
		t.Fatalf("window bounds wrong: %v .. %v", avail.Days[0].Date, avail.Days[27].Date)
	}
}

func TestComputeAvailabilitySingleDayWindow(t *testing.T) {
	t.Parallel()

	day := mustDate(t, "2024-01-01")
	avail, err := ComputeAvailability(day, day, nil, 1)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}
	if len(avail.Days) != 1 {
		t.Fatalf("expected exactly 1 day, got %d", len(avail.Days))
	}
}

func TestComputeAvailabilityRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	if _, err := ComputeAvailability(mustDate(t, "2024-01-10"), mustDate(t, "2024-01-01"), nil, 1); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestComputeAvailabilityOccupancyPerDestination(t *testing.T) {
	t.Parallel()

	start := mustDate(t, "2024-03-01")
	end := mustDate(t, "2024-03-07")
	monday := mustDate(t, "2024-03-04")

	items := []ScheduledItem{
		{DecisionID: uuid.New(), Destination: DestinationYouTube, Date: monday},
		{DecisionID: uuid.New(), Destination: DestinationSubstack, Date: monday},
	}
	avail, err := ComputeAvailability(start, end, items, 1)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}

	day, ok := avail.Day(monday)
	if !ok {
		t.Fatalf("day lookup failed")
	}
	if day.Available(DestinationYouTube) || day.Available(DestinationSubstack) {
		t.Fatalf("occupied destinations should not be available")
	}
	if !day.Available(DestinationBlog) {
		t.Fatalf("unrelated destination should still be available")
	}
	occupied := day.OccupiedDestinations()
	if len(occupied) != 2 || occupied[0] != DestinationSubstack || occupied[1] != DestinationYouTube {
		t.Fatalf("unexpected occupied destinations: %v", occupied)
	}
}

func TestComputeAvailabilityStaggerOccupiesLandingDate(t *testing.T) {
	t.Parallel()

	start := mustDate(t, "2024-03-01")
	end := mustDate(t, "2024-03-14")
	primary := mustDate(t, "2024-03-04")
	staggered := mustDate(t, "2024-03-06")

	decision := RoutingDecision{
		ID:           uuid.New(),
		IdeaID:       uuid.New(),
		RoutedTo:     DestinationYouTube,
		CalendarDate: primary,
		IsStaggered:  true,
		StaggerDates: map[string]time.Time{DestinationSubstack: staggered},
		Status:       RoutingStatusScheduled,
	}
	avail, err := ComputeAvailability(start, end, ExpandDecisions([]RoutingDecision{decision}), 1)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}

	if avail.HasCapacity(primary, DestinationYouTube) {
		t.Fatalf("primary slot should be occupied on the primary date")
	}
	if !avail.HasCapacity(primary, DestinationSubstack) {
		t.Fatalf("staggered item must not occupy the primary date")
	}
	if avail.HasCapacity(staggered, DestinationSubstack) {
		t.Fatalf("staggered item should occupy its landing date")
	}
}

func TestExpandDecisionsSkipsCancelled(t *testing.T) {
	t.Parallel()

	cancelled := RoutingDecision{
		ID:           uuid.New(),
		RoutedTo:     DestinationBlog,
		CalendarDate: mustDate(t, "2024-03-04"),
		Status:       RoutingStatusCancelled,
	}
	if items := ExpandDecisions([]RoutingDecision{cancelled}); len(items) != 0 {
		t.Fatalf("cancelled decisions must free their slots, got %d items", len(items))
	}
}

func TestComputeAvailabilityCapacityAboveOne(t *testing.T) {
	t.Parallel()

	day := mustDate(t, "2024-03-04")
	items := []ScheduledItem{
		{DecisionID: uuid.New(), Destination: DestinationYouTube, Date: day},
	}
	avail, err := ComputeAvailability(day, day, items, 2)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}
	if !avail.HasCapacity(day, DestinationYouTube) {
		t.Fatalf("one booking should leave room at capacity 2")
	}

	items = append(items, ScheduledItem{DecisionID: uuid.New(), Destination: DestinationYouTube, Date: day})
	avail, err = ComputeAvailability(day, day, items, 2)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}
	if avail.HasCapacity(day, DestinationYouTube) {
		t.Fatalf("two bookings should exhaust capacity 2")
	}
}

func TestComputeAvailabilityIgnoresItemsOutsideWindow(t *testing.T) {
	t.Parallel()

	start := mustDate(t, "2024-03-01")
	end := mustDate(t, "2024-03-07")
	items := []ScheduledItem{
		{DecisionID: uuid.New(), Destination: DestinationYouTube, Date: mustDate(t, "2024-02-28")},
		{DecisionID: uuid.New(), Destination: DestinationYouTube, Date: mustDate(t, "2024-03-08")},
	}
	avail, err := ComputeAvailability(start, end, items, 1)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}
	for _, day := range avail.Days {
		if len(day.ScheduledItems) != 0 {
			t.Fatalf("out-of-window items leaked into %s", FormatDate(day.Date))
		}
	}
}

func TestDefaultWindowStartsOnSunday(t *testing.T) {
	t.Parallel()

	// 2024-03-06 is a Wednesday; its week's Sunday is 2024-03-03.
	now := time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC)
	start, end := DefaultWindow(now, 28)
	if FormatDate(start) != "2024-03-03" {
		t.Fatalf("expected window start 2024-03-03, got %s", FormatDate(start))
	}
	if FormatDate(end) != "2024-03-30" {
		t.Fatalf("expected window end 2024-03-30, got %s", FormatDate(end))
	}
	if start.Weekday() != time.Sunday {
		t.Fatalf("window must start on Sunday, got %s", start.Weekday())
	}
}

func TestNormalizeDateUsesUTCFields(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-8", -8*3600)
	// 23:30 local on Jan 1 is already Jan 2 in UTC.
	local := time.Date(2024, 1, 1, 23, 30, 0, 0, loc)
	if got := FormatDate(NormalizeDate(local)); got != "2024-01-02" {
		t.Fatalf("expected UTC day 2024-01-02, got %s", got)
	}
}
