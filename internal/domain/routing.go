package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// RouteOptions carries the caller-owned knobs of a routing run.
type RouteOptions struct {
	// From is the first date considered for the primary slot: the idea's
	// requested date or the caller's default. Normalized to UTC midnight.
	From time.Time
	// HorizonDays bounds the forward slot search so exhausted capacity
	// fails with ErrNoAvailableSlot instead of scanning forever.
	HorizonDays int
}

// SelectRule picks the winning rule for an idea: active rules only, priority
// ascending (lower number evaluated first), ties broken by ID ascending,
// first match wins. Returns ErrNoMatch when nothing matches.
func SelectRule(idea Idea, rules []RoutingRule) (RoutingRule, error) {
	active := make([]RoutingRule, 0, len(rules))
	for _, rule := range rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].Priority != active[j].Priority {
			return active[i].Priority < active[j].Priority
		}
		return active[i].ID.String() < active[j].ID.String()
	})
	for _, rule := range active {
		if rule.Matches(idea) {
			return rule, nil
		}
	}
	return RoutingRule{}, ErrNoMatch
}

// Route produces a scheduled RoutingDecision for the idea, or fails with
// ErrNoMatch / ErrNoAvailableSlot. The availability view is mutated as slots
// are claimed so a multi-destination decision never double-books itself;
// callers refresh availability before each independent routing run.
//
// Deterministic: identical (idea, rules, availability, opts) inputs always
// yield an identical decision or identical error.
func Route(idea Idea, rules []RoutingRule, avail *Availability, opts RouteOptions) (RoutingDecision, error) {
	rule, err := SelectRule(idea, rules)
	if err != nil {
		return RoutingDecision{}, err
	}
	if len(rule.RoutesTo) == 0 {
		return RoutingDecision{}, ErrNoMatch
	}

	horizon := opts.HorizonDays
	if horizon <= 0 {
		horizon = 28
	}
	from := NormalizeDate(opts.From)
	if from.Before(avail.Start) {
		from = avail.Start
	}

	decision := RoutingDecision{
		ID:       uuid.New(),
		IdeaID:   idea.ID,
		RoutedTo: rule.RoutesTo[0],
		Tier:     TierForImpact(idea.ImpactLevel),
		Status:   RoutingStatusScheduled,
	}

	primaryDate, err := firstAvailable(avail, from, decision.RoutedTo, horizon)
	if err != nil {
		return RoutingDecision{}, err
	}
	decision.CalendarDate = primaryDate
	avail.reserve(primaryDate, decision.RoutedTo, ScheduledItem{
		DecisionID:  decision.ID,
		IdeaID:      idea.ID,
		Destination: decision.RoutedTo,
		Date:        primaryDate,
	})

	if len(rule.RoutesTo) > 1 {
		decision.IsStaggered = true
		decision.StaggerDates = make(map[string]time.Time, len(rule.RoutesTo)-1)
		for _, dest := range rule.RoutesTo[1:] {
			// Secondary slots may share the primary date but never precede it.
			date, err := firstAvailable(avail, primaryDate, dest, horizon)
			if err != nil {
				return RoutingDecision{}, err
			}
			decision.StaggerDates[dest] = date
			avail.reserve(date, dest, ScheduledItem{
				DecisionID:  decision.ID,
				IdeaID:      idea.ID,
				Destination: dest,
				Date:        date,
				IsStagger:   true,
			})
		}
	}

	if rule.YouTubeVersion != "" && routesToYouTube(rule.RoutesTo) {
		decision.YouTubeVersion = rule.YouTubeVersion
	}
	return decision, nil
}

// firstAvailable scans forward from `from` for the earliest date with spare
// capacity for the destination, within the horizon and the window bounds.
func firstAvailable(avail *Availability, from time.Time, destination string, horizonDays int) (time.Time, error) {
	limit := from.AddDate(0, 0, horizonDays)
	for day := from; day.Before(limit) && !day.After(avail.End); day = day.AddDate(0, 0, 1) {
		if avail.HasCapacity(day, destination) {
			return day, nil
		}
	}
	return time.Time{}, ErrNoAvailableSlot
}

func routesToYouTube(destinations []string) bool {
	for _, dest := range destinations {
		if dest == DestinationYouTube {
			return true
		}
	}
	return false
}
