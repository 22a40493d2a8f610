package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for calendar dates. All date arithmetic in
// this package happens at day granularity on UTC-normalized times.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.
// Out-of-range components (month 13, day 40) fail rather than normalize.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// NormalizeDate truncates a time to UTC midnight. Using UTC fields exclusively
// avoids timezone drift at day boundaries.
func NormalizeDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a time as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Idea statuses. Only unrouted -> scheduled is produced by the routing
// engine; the remaining transitions come from the publishing workflow.
const (
	IdeaStatusUnrouted  = "unrouted"
	IdeaStatusScheduled = "scheduled"
	IdeaStatusPublished = "published"
	IdeaStatusCancelled = "cancelled"
)

// Routing record statuses.
const (
	RoutingStatusScheduled = "scheduled"
	RoutingStatusPublished = "published"
	RoutingStatusCancelled = "cancelled"
)

// Idea attribute names recognized by rule conditions. The set is closed so
// that a typo in a rule fails at creation time instead of silently never
// matching.
const (
	AttrImpactLevel = "impact_level"
	AttrContentType = "content_type"
	AttrSource      = "source"
)

// Known publication destinations.
const (
	DestinationYouTube  = "youtube"
	DestinationSubstack = "substack"
	DestinationBlog     = "blog"
	DestinationTwitter  = "twitter"
)

// Idea is a content item eligible for scheduling/routing.
type Idea struct {
	ID            uuid.UUID
	Title         string
	ImpactLevel   string
	ContentType   string
	Source        string
	RequestedDate *time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Attribute resolves a condition attribute by name. The boolean reports
// whether the name belongs to the recognized set.
func (i Idea) Attribute(name string) (string, bool) {
	switch name {
	case AttrImpactLevel:
		return i.ImpactLevel, true
	case AttrContentType:
		return i.ContentType, true
	case AttrSource:
		return i.Source, true
	default:
		return "", false
	}
}

// RoutingRule decides which destination(s) an idea goes to. Rules are
// read-only input to the engine; administration happens through the rule
// store.
type RoutingRule struct {
	ID          uuid.UUID
	Name        string
	Description string
	// Priority orders evaluation: lower value is evaluated first. Ties break
	// by ID ascending so selection stays reproducible.
	Priority int
	// Conditions maps a recognized idea attribute to its accepted values.
	// An empty map matches any idea (catch-all).
	Conditions map[string][]string
	// RoutesTo lists destinations in publish order; the first is primary.
	RoutesTo       []string
	YouTubeVersion string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Matches reports whether every listed condition holds for the idea.
// Attributes the rule does not mention are "don't care".
func (r RoutingRule) Matches(idea Idea) bool {
	for attr, accepted := range r.Conditions {
		value, ok := idea.Attribute(attr)
		if !ok {
			return false
		}
		found := false
		for _, candidate := range accepted {
			if candidate == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// RoutingDecision is the engine output, persisted as an idea_routing record.
type RoutingDecision struct {
	ID       uuid.UUID
	IdeaID   uuid.UUID
	RoutedTo string
	Tier     string
	// CalendarDate is the assigned primary publish date (UTC midnight).
	CalendarDate time.Time
	IsStaggered  bool
	// StaggerDates holds one landing date per secondary destination.
	// Every stagger date is >= CalendarDate.
	StaggerDates   map[string]time.Time
	YouTubeVersion string
	Status         string
	CreatedAt      time.Time
}

// Destinations returns the primary destination followed by the staggered
// secondaries in deterministic (sorted) order.
func (d RoutingDecision) Destinations() []string {
	out := []string{d.RoutedTo}
	for _, dest := range sortedKeys(d.StaggerDates) {
		out = append(out, dest)
	}
	return out
}

// ScheduledItem is one effective (date, destination) occupancy derived from
// a routing decision. Staggered items carry the date they actually land on,
// not the primary date.
type ScheduledItem struct {
	DecisionID  uuid.UUID
	IdeaID      uuid.UUID
	Destination string
	Date        time.Time
	IsStagger   bool
}

// ExpandDecisions spreads decisions into per-destination scheduled items.
// Cancelled records stop occupying calendar slots.
func ExpandDecisions(decisions []RoutingDecision) []ScheduledItem {
	items := make([]ScheduledItem, 0, len(decisions))
	for _, d := range decisions {
		if d.Status == RoutingStatusCancelled {
			continue
		}
		items = append(items, ScheduledItem{
			DecisionID:  d.ID,
			IdeaID:      d.IdeaID,
			Destination: d.RoutedTo,
			Date:        NormalizeDate(d.CalendarDate),
		})
		for _, dest := range sortedKeys(d.StaggerDates) {
			items = append(items, ScheduledItem{
				DecisionID:  d.ID,
				IdeaID:      d.IdeaID,
				Destination: dest,
				Date:        NormalizeDate(d.StaggerDates[dest]),
				IsStagger:   true,
			})
		}
	}
	return items
}

// TierForImpact derives the decision tier from an idea's impact level.
func TierForImpact(impactLevel string) string {
	switch impactLevel {
	case "major":
		return "tier-1"
	case "moderate":
		return "tier-2"
	default:
		return "tier-3"
	}
}

// ChangelogEntry is a captured competitor/changelog item.
type ChangelogEntry struct {
	ID         uuid.UUID
	Source     string
	Title      string
	URL        string
	Summary    string
	Tags       []string
	CapturedAt time.Time
}

// SubscriberToken is the stored record of an issued access token. The secret
// itself is never persisted, only its hash.
type SubscriberToken struct {
	ID              uuid.UUID
	SubscriberEmail string
	Scope           string
	SecretHash      string
	IssuedAt        time.Time
	ExpiresAt       time.Time
	RevokedAt       *time.Time
}
