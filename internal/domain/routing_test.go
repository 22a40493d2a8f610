package domain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func testIdea(impact, contentType, source string) Idea {
	return Idea{
		ID:          uuid.New(),
		Title:       "test idea",
		ImpactLevel: impact,
		ContentType: contentType,
		Source:      source,
		Status:      IdeaStatusUnrouted,
	}
}

func emptyWindow(t *testing.T, start, end string) *Availability {
	t.Helper()
	avail, err := ComputeAvailability(mustDate(t, start), mustDate(t, end), nil, 1)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}
	return avail
}

func TestSelectRulePriorityAscendingFirstMatch(t *testing.T) {
	t.Parallel()

	idea := testIdea("major", "video", "internal")
	rules := []RoutingRule{
		{
			ID:       uuid.New(),
			Name:     "catch-all",
			Priority: 10,
			RoutesTo: []string{DestinationBlog},
			IsActive: true,
		},
		{
			ID:         uuid.New(),
			Name:       "major-video",
			Priority:   1,
			Conditions: map[string][]string{AttrImpactLevel: {"major"}, AttrContentType: {"video"}},
			RoutesTo:   []string{DestinationYouTube},
			IsActive:   true,
		},
		{
			ID:         uuid.New(),
			Name:       "major-anything",
			Priority:   5,
			Conditions: map[string][]string{AttrImpactLevel: {"major"}},
			RoutesTo:   []string{DestinationSubstack},
			IsActive:   true,
		},
	}

	rule, err := SelectRule(idea, rules)
	if err != nil {
		t.Fatalf("select rule: %v", err)
	}
	if rule.Name != "major-video" {
		t.Fatalf("expected lowest-priority-number rule to win, got %q", rule.Name)
	}
}

func TestSelectRuleSkipsInactive(t *testing.T) {
	t.Parallel()

	idea := testIdea("major", "video", "internal")
	inactive := RoutingRule{
		ID:       uuid.New(),
		Name:     "disabled",
		Priority: 0,
		RoutesTo: []string{DestinationYouTube},
		IsActive: false,
	}
	fallback := RoutingRule{
		ID:       uuid.New(),
		Name:     "fallback",
		Priority: 9,
		RoutesTo: []string{DestinationBlog},
		IsActive: true,
	}

	rule, err := SelectRule(idea, []RoutingRule{inactive, fallback})
	if err != nil {
		t.Fatalf("select rule: %v", err)
	}
	if rule.Name != "fallback" {
		t.Fatalf("inactive rule must not win, got %q", rule.Name)
	}

	if _, err := SelectRule(idea, []RoutingRule{inactive}); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch with only inactive rules, got %v", err)
	}
}

func TestSelectRuleTieBreaksByID(t *testing.T) {
	t.Parallel()

	idea := testIdea("minor", "post", "internal")
	a := RoutingRule{
		ID:       uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Name:     "first-by-id",
		Priority: 3,
		RoutesTo: []string{DestinationBlog},
		IsActive: true,
	}
	b := RoutingRule{
		ID:       uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		Name:     "second-by-id",
		Priority: 3,
		RoutesTo: []string{DestinationTwitter},
		IsActive: true,
	}

	// Input order must not matter.
	for _, rules := range [][]RoutingRule{{a, b}, {b, a}} {
		rule, err := SelectRule(idea, rules)
		if err != nil {
			t.Fatalf("select rule: %v", err)
		}
		if rule.Name != "first-by-id" {
			t.Fatalf("tie must break by id ascending, got %q", rule.Name)
		}
	}
}

func TestRouteEmptyConditionsMatchesAnyIdea(t *testing.T) {
	t.Parallel()

	catchAll := RoutingRule{
		ID:       uuid.New(),
		Name:     "catch-all",
		Priority: 99,
		RoutesTo: []string{DestinationBlog},
		IsActive: true,
	}
	avail := emptyWindow(t, "2024-03-03", "2024-03-30")

	decision, err := Route(testIdea("minor", "note", "external"), []RoutingRule{catchAll}, avail, RouteOptions{
		From:        mustDate(t, "2024-03-05"),
		HorizonDays: 28,
	})
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if decision.RoutedTo != DestinationBlog {
		t.Fatalf("expected blog, got %q", decision.RoutedTo)
	}
	if FormatDate(decision.CalendarDate) != "2024-03-05" {
		t.Fatalf("expected first open date 2024-03-05, got %s", FormatDate(decision.CalendarDate))
	}
	if decision.Tier != "tier-3" {
		t.Fatalf("minor impact maps to tier-3, got %q", decision.Tier)
	}
	if decision.Status != RoutingStatusScheduled {
		t.Fatalf("fresh decision must be scheduled, got %q", decision.Status)
	}
}

func TestRouteSkipsOccupiedDates(t *testing.T) {
	t.Parallel()

	rule := RoutingRule{
		ID:       uuid.New(),
		Name:     "youtube",
		Priority: 1,
		RoutesTo: []string{DestinationYouTube},
		IsActive: true,
	}
	occupied := []ScheduledItem{
		{DecisionID: uuid.New(), Destination: DestinationYouTube, Date: mustDate(t, "2024-03-05")},
		{DecisionID: uuid.New(), Destination: DestinationYouTube, Date: mustDate(t, "2024-03-06")},
	}
	avail, err := ComputeAvailability(mustDate(t, "2024-03-03"), mustDate(t, "2024-03-30"), occupied, 1)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}

	decision, err := Route(testIdea("major", "video", "internal"), []RoutingRule{rule}, avail, RouteOptions{
		From:        mustDate(t, "2024-03-05"),
		HorizonDays: 28,
	})
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if FormatDate(decision.CalendarDate) != "2024-03-07" {
		t.Fatalf("expected first free date 2024-03-07, got %s", FormatDate(decision.CalendarDate))
	}
}

func TestRouteStaggerDatesNeverPrecedePrimary(t *testing.T) {
	t.Parallel()

	rule := RoutingRule{
		ID:       uuid.New(),
		Name:     "multi",
		Priority: 1,
		RoutesTo: []string{DestinationYouTube, DestinationSubstack, DestinationTwitter},
		IsActive: true,
	}
	// Substack is blocked on the primary date so its stagger lands later.
	occupied := []ScheduledItem{
		{DecisionID: uuid.New(), Destination: DestinationSubstack, Date: mustDate(t, "2024-03-05")},
	}
	avail, err := ComputeAvailability(mustDate(t, "2024-03-03"), mustDate(t, "2024-03-30"), occupied, 1)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}

	decision, err := Route(testIdea("major", "video", "internal"), []RoutingRule{rule}, avail, RouteOptions{
		From:        mustDate(t, "2024-03-05"),
		HorizonDays: 28,
	})
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if !decision.IsStaggered {
		t.Fatalf("multi-destination decision must be staggered")
	}
	if FormatDate(decision.CalendarDate) != "2024-03-05" {
		t.Fatalf("expected primary 2024-03-05, got %s", FormatDate(decision.CalendarDate))
	}
	if got := FormatDate(decision.StaggerDates[DestinationSubstack]); got != "2024-03-06" {
		t.Fatalf("expected substack stagger 2024-03-06, got %s", got)
	}
	// Twitter is free on the primary date: same-day stagger is allowed.
	if got := FormatDate(decision.StaggerDates[DestinationTwitter]); got != "2024-03-05" {
		t.Fatalf("expected twitter stagger 2024-03-05, got %s", got)
	}
	for dest, date := range decision.StaggerDates {
		if date.Before(decision.CalendarDate) {
			t.Fatalf("stagger %s precedes primary date", dest)
		}
	}
}

func TestRouteDecisionDoesNotOverlapItself(t *testing.T) {
	t.Parallel()

	// A second run against the same mutated availability must avoid the
	// first decision's slots.
	rule := RoutingRule{
		ID:       uuid.New(),
		Name:     "youtube",
		Priority: 1,
		RoutesTo: []string{DestinationYouTube},
		IsActive: true,
	}
	avail := emptyWindow(t, "2024-03-03", "2024-03-30")
	opts := RouteOptions{From: mustDate(t, "2024-03-05"), HorizonDays: 28}

	first, err := Route(testIdea("major", "video", "internal"), []RoutingRule{rule}, avail, opts)
	if err != nil {
		t.Fatalf("route first: %v", err)
	}
	second, err := Route(testIdea("major", "video", "internal"), []RoutingRule{rule}, avail, opts)
	if err != nil {
		t.Fatalf("route second: %v", err)
	}
	if first.CalendarDate.Equal(second.CalendarDate) {
		t.Fatalf("second decision booked the same slot: %s", FormatDate(first.CalendarDate))
	}
}

func TestRouteExhaustedHorizonFails(t *testing.T) {
	t.Parallel()

	rule := RoutingRule{
		ID:       uuid.New(),
		Name:     "youtube",
		Priority: 1,
		RoutesTo: []string{DestinationYouTube},
		IsActive: true,
	}
	items := make([]ScheduledItem, 0, 28)
	for day := mustDate(t, "2024-03-03"); !day.After(mustDate(t, "2024-03-30")); day = day.AddDate(0, 0, 1) {
		items = append(items, ScheduledItem{DecisionID: uuid.New(), Destination: DestinationYouTube, Date: day})
	}
	avail, err := ComputeAvailability(mustDate(t, "2024-03-03"), mustDate(t, "2024-03-30"), items, 1)
	if err != nil {
		t.Fatalf("compute availability: %v", err)
	}

	_, err = Route(testIdea("major", "video", "internal"), []RoutingRule{rule}, avail, RouteOptions{
		From:        mustDate(t, "2024-03-03"),
		HorizonDays: 28,
	})
	if !errors.Is(err, ErrNoAvailableSlot) {
		t.Fatalf("expected ErrNoAvailableSlot, got %v", err)
	}
}

func TestRouteNoMatchingRule(t *testing.T) {
	t.Parallel()

	rule := RoutingRule{
		ID:         uuid.New(),
		Name:       "video-only",
		Priority:   1,
		Conditions: map[string][]string{AttrContentType: {"video"}},
		RoutesTo:   []string{DestinationYouTube},
		IsActive:   true,
	}
	avail := emptyWindow(t, "2024-03-03", "2024-03-30")

	_, err := Route(testIdea("minor", "post", "internal"), []RoutingRule{rule}, avail, RouteOptions{
		From:        mustDate(t, "2024-03-05"),
		HorizonDays: 28,
	})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestRouteYouTubeVersionOnlyWhenRoutedToYouTube(t *testing.T) {
	t.Parallel()

	avail := emptyWindow(t, "2024-03-03", "2024-03-30")
	opts := RouteOptions{From: mustDate(t, "2024-03-05"), HorizonDays: 28}

	withYouTube := RoutingRule{
		ID:             uuid.New(),
		Name:           "yt",
		Priority:       1,
		RoutesTo:       []string{DestinationYouTube},
		YouTubeVersion: "long-form",
		IsActive:       true,
	}
	decision, err := Route(testIdea("major", "video", "internal"), []RoutingRule{withYouTube}, avail, opts)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if decision.YouTubeVersion != "long-form" {
		t.Fatalf("expected youtube_version carried through, got %q", decision.YouTubeVersion)
	}
}

func TestRouteDeterministicForIdenticalInputs(t *testing.T) {
	t.Parallel()

	rule := RoutingRule{
		ID:       uuid.New(),
		Name:     "multi",
		Priority: 1,
		RoutesTo: []string{DestinationYouTube, DestinationBlog},
		IsActive: true,
	}
	idea := testIdea("moderate", "video", "internal")
	opts := RouteOptions{From: mustDate(t, "2024-03-05"), HorizonDays: 28}

	first, err := Route(idea, []RoutingRule{rule}, emptyWindow(t, "2024-03-03", "2024-03-30"), opts)
	if err != nil {
		t.Fatalf("route first: %v", err)
	}
	second, err := Route(idea, []RoutingRule{rule}, emptyWindow(t, "2024-03-03", "2024-03-30"), opts)
	if err != nil {
		t.Fatalf("route second: %v", err)
	}

	if !first.CalendarDate.Equal(second.CalendarDate) || first.RoutedTo != second.RoutedTo || first.Tier != second.Tier {
		t.Fatalf("identical inputs produced diverging decisions")
	}
	firstDates := map[string]string{}
	secondDates := map[string]string{}
	for k, v := range first.StaggerDates {
		firstDates[k] = FormatDate(v)
	}
	for k, v := range second.StaggerDates {
		secondDates[k] = FormatDate(v)
	}
	if !reflect.DeepEqual(firstDates, secondDates) {
		t.Fatalf("stagger dates diverged: %v vs %v", firstDates, secondDates)
	}
}

func TestTierForImpact(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"major":    "tier-1",
		"moderate": "tier-2",
		"minor":    "tier-3",
		"":         "tier-3",
	}
	for impact, want := range cases {
		if got := TierForImpact(impact); got != want {
			t.Fatalf("TierForImpact(%q) = %q, want %q", impact, got, want)
		}
	}
}

func TestRouteFromBeforeWindowClampsToStart(t *testing.T) {
	t.Parallel()

	rule := RoutingRule{
		ID:       uuid.New(),
		Name:     "blog",
		Priority: 1,
		RoutesTo: []string{DestinationBlog},
		IsActive: true,
	}
	avail := emptyWindow(t, "2024-03-03", "2024-03-30")

	decision, err := Route(testIdea("minor", "post", "internal"), []RoutingRule{rule}, avail, RouteOptions{
		From:        mustDate(t, "2024-02-01"),
		HorizonDays: 28,
	})
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if FormatDate(decision.CalendarDate) != "2024-03-03" {
		t.Fatalf("expected clamp to window start 2024-03-03, got %s", FormatDate(decision.CalendarDate))
	}
}
