package postgres

import (
	"gorm.io/gorm"

	"github.com/contentpipe/scheduler/internal/ports"
)

type Repositories struct {
	Rules     ports.RuleRepository
	Ideas     ports.IdeaRepository
	Routing   ports.RoutingRepository
	Changelog ports.ChangelogRepository
	Tokens    ports.TokenRepository
	Outbox    ports.OutboxRepository
}

// NewRepositories wires the gorm-backed stores. slotsPerDestination is the
// per-day booking capacity the routing store enforces on slot inserts.
func NewRepositories(db *gorm.DB, slotsPerDestination int) Repositories {
	return Repositories{
		Rules:     &ruleRepository{db: db},
		Ideas:     &ideaRepository{db: db},
		Routing:   &routingRepository{db: db, capacity: slotsPerDestination},
		Changelog: &changelogRepository{db: db},
		Tokens:    &tokenRepository{db: db},
		Outbox:    &outboxRepository{db: db},
	}
}
