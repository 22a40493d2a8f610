package postgres

import (
	"time"

	"github.com/google/uuid"
)

type ruleModel struct {
	RuleID         uuid.UUID `gorm:"column:rule_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"column:name"`
	Description    string    `gorm:"column:description"`
	Priority       int       `gorm:"column:priority"`
	Conditions     string    `gorm:"column:conditions;type:jsonb"`
	RoutesTo       string    `gorm:"column:routes_to;type:jsonb"`
	YouTubeVersion string    `gorm:"column:youtube_version"`
	IsActive       bool      `gorm:"column:is_active"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (ruleModel) TableName() string { return "routing_rules" }

type ideaModel struct {
	IdeaID        uuid.UUID  `gorm:"column:idea_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string     `gorm:"column:title"`
	ImpactLevel   string     `gorm:"column:impact_level"`
	ContentType   string     `gorm:"column:content_type"`
	Source        string     `gorm:"column:source"`
	RequestedDate *time.Time `gorm:"column:requested_date"`
	Status        string     `gorm:"column:status"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (ideaModel) TableName() string { return "ideas" }

type routingModel struct {
	DecisionID     uuid.UUID `gorm:"column:decision_id;type:uuid;primaryKey"`
	IdeaID         uuid.UUID `gorm:"column:idea_id"`
	RoutedTo       string    `gorm:"column:routed_to"`
	Tier           string    `gorm:"column:tier"`
	CalendarDate   time.Time `gorm:"column:calendar_date"`
	IsStaggered    bool      `gorm:"column:is_staggered"`
	StaggerDates   string    `gorm:"column:stagger_dates;type:jsonb"`
	YouTubeVersion string    `gorm:"column:youtube_version"`
	Status         string    `gorm:"column:status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (routingModel) TableName() string { return "idea_routing" }

type routingSlotModel struct {
	SlotID       int64     `gorm:"column:slot_id;primaryKey"`
	DecisionID   uuid.UUID `gorm:"column:decision_id"`
	CalendarDate time.Time `gorm:"column:calendar_date"`
	Destination  string    `gorm:"column:destination"`
	Slot         int       `gorm:"column:slot"`
	IsStagger    bool      `gorm:"column:is_stagger"`
}

func (routingSlotModel) TableName() string { return "routing_slots" }

type changelogModel struct {
	EntryID    uuid.UUID `gorm:"column:entry_id;type:uuid;primaryKey"`
	Source     string    `gorm:"column:source"`
	Title      string    `gorm:"column:title"`
	URL        string    `gorm:"column:url"`
	Summary    string    `gorm:"column:summary"`
	Tags       string    `gorm:"column:tags;type:jsonb"`
	CapturedAt time.Time `gorm:"column:captured_at"`
}

func (changelogModel) TableName() string { return "changelog_entries" }

type subscriberTokenModel struct {
	TokenID         uuid.UUID  `gorm:"column:token_id;type:uuid;primaryKey"`
	SubscriberEmail string     `gorm:"column:subscriber_email"`
	Scope           string     `gorm:"column:scope"`
	SecretHash      string     `gorm:"column:secret_hash"`
	IssuedAt        time.Time  `gorm:"column:issued_at"`
	ExpiresAt       time.Time  `gorm:"column:expires_at"`
	RevokedAt       *time.Time `gorm:"column:revoked_at"`
}

func (subscriberTokenModel) TableName() string { return "subscriber_tokens" }

type outboxModel struct {
	OutboxID     uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      string     `gorm:"column:payload;type:jsonb"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	RetryCount   int        `gorm:"column:retry_count"`
	LastError    *string    `gorm:"column:last_error"`
	LastErrorAt  *time.Time `gorm:"column:last_error_at"`
}

func (outboxModel) TableName() string { return "scheduler_outbox" }
