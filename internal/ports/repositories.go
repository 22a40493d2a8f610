package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/contentpipe/scheduler/internal/domain"
)

// RuleUpdateParams is a partial rule update: only non-nil fields change.
// Pointer fields keep "absent" and "set to zero value" distinguishable.
type RuleUpdateParams struct {
	Name           *string
	Description    *string
	Priority       *int
	Conditions     *map[string][]string
	RoutesTo       *[]string
	YouTubeVersion *string
	IsActive       *bool
}

// RuleRepository manages the routing rule set. The engine only ever reads
// rules; mutation happens through the administrative API.
type RuleRepository interface {
	List(ctx context.Context, includeInactive bool) ([]domain.RoutingRule, error)
	GetByID(ctx context.Context, ruleID uuid.UUID) (domain.RoutingRule, error)
	Create(ctx context.Context, rule domain.RoutingRule) (domain.RoutingRule, error)
	Update(ctx context.Context, ruleID uuid.UUID, params RuleUpdateParams, updatedAt time.Time) (domain.RoutingRule, error)
	Delete(ctx context.Context, ruleID uuid.UUID) (domain.RoutingRule, error)
}

// IdeaCreateParams captures idea intake fields.
type IdeaCreateParams struct {
	Title         string
	ImpactLevel   string
	ContentType   string
	Source        string
	RequestedDate *time.Time
}

// IdeaRepository provides read/write access to content ideas.
type IdeaRepository interface {
	Create(ctx context.Context, params IdeaCreateParams, createdAt time.Time) (domain.Idea, error)
	GetByID(ctx context.Context, ideaID uuid.UUID) (domain.Idea, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.Idea, error)
	UpdateStatus(ctx context.Context, ideaID uuid.UUID, status string, updatedAt time.Time) error
}

// RoutingRepository persists routing decisions. Create must enforce the
// (calendar_date, destination, slot) uniqueness invariant and surface
// violations as domain.ErrSlotTaken; that transactional write is the
// serialization point for concurrent routing requests.
type RoutingRepository interface {
	Create(ctx context.Context, decision domain.RoutingDecision, outboxEvent OutboxEvent) (domain.RoutingDecision, error)
	GetByIdeaID(ctx context.Context, ideaID uuid.UUID) (domain.RoutingDecision, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]domain.RoutingDecision, error)
	UpdateStatus(ctx context.Context, decisionID uuid.UUID, status string, updatedAt time.Time) error
}

// ChangelogRepository stores captured competitor/changelog items.
type ChangelogRepository interface {
	Insert(ctx context.Context, entry domain.ChangelogEntry) (domain.ChangelogEntry, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ChangelogEntry, error)
}

// TokenRepository keeps issued subscriber-token records (hashes only).
type TokenRepository interface {
	Insert(ctx context.Context, token domain.SubscriberToken) error
	GetByID(ctx context.Context, tokenID uuid.UUID) (domain.SubscriberToken, error)
	List(ctx context.Context, limit, offset int) ([]domain.SubscriberToken, error)
	Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error
}

// OutboxEvent is the write-side event payload prior to storage.
// It is adapter-neutral to keep application code independent of broker specifics.
type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

// OutboxRecord represents durable outbox state, including retry/error metadata.
type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	LastError    *string
	CreatedAt    time.Time
	PublishedAt  *time.Time
	LastErrorAt  *time.Time
}

// OutboxRepository controls publish-retry workflow for domain events.
// This explicit contract enables transactional outbox patterns without leaking DB details.
type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}
