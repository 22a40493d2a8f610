package application

import (
	"time"

	"github.com/google/uuid"
)

type Config struct {
	// SlotsPerDestination is the per-day capacity of each destination.
	SlotsPerDestination int
	// SearchHorizonDays bounds the forward slot search during routing.
	SearchHorizonDays int
	// DefaultWindowDays sizes the default calendar query window.
	DefaultWindowDays int
	TokenTTL          time.Duration
	AdminKeyHash      string
}

type CalendarRequest struct {
	Start string
	End   string
}

type CalendarDayView struct {
	Date                 string   `json:"date"`
	Capacity             int      `json:"capacity"`
	ScheduledCount       int      `json:"scheduled_count"`
	Available            bool     `json:"available"`
	OccupiedDestinations []string `json:"occupied_destinations"`
}

type ScheduledIdeaView struct {
	IdeaID       uuid.UUID         `json:"idea_id"`
	RoutedTo     string            `json:"routed_to"`
	Tier         string            `json:"tier"`
	CalendarDate string            `json:"calendar_date"`
	IsStaggered  bool              `json:"is_staggered"`
	StaggerDates map[string]string `json:"stagger_dates,omitempty"`
	Status       string            `json:"status"`
}

type CalendarResponse struct {
	StartDate      string              `json:"start_date"`
	EndDate        string              `json:"end_date"`
	Availability   []CalendarDayView   `json:"availability"`
	ScheduledIdeas []ScheduledIdeaView `json:"scheduled_ideas"`
}

// RuleView is the wire shape of a routing rule. Domain structs stay
// untagged; everything that leaves the service goes through a tagged view.
type RuleView struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Priority       int                 `json:"priority"`
	Conditions     map[string][]string `json:"conditions"`
	RoutesTo       []string            `json:"routes_to"`
	YouTubeVersion string              `json:"youtube_version,omitempty"`
	IsActive       bool                `json:"is_active"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type IdeaView struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	ImpactLevel   string    `json:"impact_level"`
	ContentType   string    `json:"content_type,omitempty"`
	Source        string    `json:"source,omitempty"`
	RequestedDate string    `json:"requested_date,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ChangelogEntryView struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	Title      string    `json:"title"`
	URL        string    `json:"url,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	Tags       []string  `json:"tags"`
	CapturedAt time.Time `json:"captured_at"`
}

type RuleInput struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Priority       int                 `json:"priority"`
	Conditions     map[string][]string `json:"conditions"`
	RoutesTo       []string            `json:"routes_to"`
	YouTubeVersion string              `json:"youtube_version"`
	IsActive       *bool               `json:"is_active"`
}

type RuleUpdateInput struct {
	Name           *string              `json:"name"`
	Description    *string              `json:"description"`
	Priority       *int                 `json:"priority"`
	Conditions     *map[string][]string `json:"conditions"`
	RoutesTo       *[]string            `json:"routes_to"`
	YouTubeVersion *string              `json:"youtube_version"`
	IsActive       *bool                `json:"is_active"`
}

type IdeaInput struct {
	Title         string `json:"title"`
	ImpactLevel   string `json:"impact_level"`
	ContentType   string `json:"content_type"`
	Source        string `json:"source"`
	RequestedDate string `json:"requested_date"`
}

type RouteRequest struct {
	// From overrides the first candidate date; defaults to the idea's
	// requested date, then to today.
	From string `json:"from"`
}

type RouteResponse struct {
	DecisionID     uuid.UUID         `json:"decision_id"`
	IdeaID         uuid.UUID         `json:"idea_id"`
	RoutedTo       string            `json:"routed_to"`
	Tier           string            `json:"tier"`
	CalendarDate   string            `json:"calendar_date"`
	IsStaggered    bool              `json:"is_staggered"`
	StaggerDates   map[string]string `json:"stagger_dates,omitempty"`
	YouTubeVersion string            `json:"youtube_version,omitempty"`
	Status         string            `json:"status"`
}

type ChangelogInput struct {
	Source  string   `json:"source"`
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

type IssueTokenRequest struct {
	SubscriberEmail string `json:"subscriber_email"`
	Scope           string `json:"scope"`
}

type IssueTokenResponse struct {
	TokenID   uuid.UUID `json:"token_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type TokenView struct {
	TokenID         uuid.UUID  `json:"token_id"`
	SubscriberEmail string     `json:"subscriber_email"`
	Scope           string     `json:"scope"`
	IssuedAt        time.Time  `json:"issued_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	RevokedAt       *time.Time `json:"revoked_at,omitempty"`
}
