package application

import (
	"time"

	"github.com/contentpipe/scheduler/internal/ports"
)

type Service struct {
	cfg         Config
	rules       ports.RuleRepository
	ideas       ports.IdeaRepository
	routing     ports.RoutingRepository
	changelog   ports.ChangelogRepository
	tokens      ports.TokenRepository
	outbox      ports.OutboxRepository
	revocations ports.TokenRevocationStore
	routeGuard  ports.RouteGuardStore
	hasher      ports.SecretHasher
	tokenSigner ports.TokenSigner
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Rules       ports.RuleRepository
	Ideas       ports.IdeaRepository
	Routing     ports.RoutingRepository
	Changelog   ports.ChangelogRepository
	Tokens      ports.TokenRepository
	Outbox      ports.OutboxRepository
	Revocations ports.TokenRevocationStore
	RouteGuard  ports.RouteGuardStore
	Hasher      ports.SecretHasher
	TokenSigner ports.TokenSigner
	// Now overrides the service clock. Injecting "today" keeps the default
	// calendar window deterministic under test.
	Now func() time.Time
}

func NewService(deps Dependencies) *Service {
	nowFn := deps.Now
	if nowFn == nil {
		nowFn = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		cfg:         deps.Config,
		rules:       deps.Rules,
		ideas:       deps.Ideas,
		routing:     deps.Routing,
		changelog:   deps.Changelog,
		tokens:      deps.Tokens,
		outbox:      deps.Outbox,
		revocations: deps.Revocations,
		routeGuard:  deps.RouteGuard,
		hasher:      deps.Hasher,
		tokenSigner: deps.TokenSigner,
		nowFn:       nowFn,
	}
}
