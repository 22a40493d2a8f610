package application

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contentpipe/scheduler/internal/domain"
	"github.com/contentpipe/scheduler/internal/ports"
)

// IssueSubscriberToken mints a signed access token for a subscriber and
// stores a hashed record of it. The raw token is returned exactly once.
func (s *Service) IssueSubscriberToken(ctx context.Context, req IssueTokenRequest) (IssueTokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.SubscriberEmail))
	if email == "" {
		return IssueTokenResponse{}, fmt.Errorf("%w: subscriber_email is required", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return IssueTokenResponse{}, fmt.Errorf("%w: invalid subscriber_email", domain.ErrInvalidInput)
	}
	scope := strings.TrimSpace(req.Scope)
	if scope == "" {
		scope = "read"
	}

	now := s.nowFn()
	ttl := s.cfg.TokenTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	claims := ports.AccessClaims{
		TokenID:         uuid.New(),
		SubscriberEmail: email,
		Scope:           scope,
		IssuedAt:        now,
		ExpiresAt:       now.Add(ttl),
	}

	signed, err := s.tokenSigner.Sign(claims)
	if err != nil {
		return IssueTokenResponse{}, fmt.Errorf("sign token: %w", err)
	}

	if err := s.tokens.Insert(ctx, domain.SubscriberToken{
		ID:              claims.TokenID,
		SubscriberEmail: email,
		Scope:           scope,
		SecretHash:      fingerprintToken(signed),
		IssuedAt:        now,
		ExpiresAt:       claims.ExpiresAt,
	}); err != nil {
		return IssueTokenResponse{}, fmt.Errorf("store token: %w", err)
	}

	return IssueTokenResponse{
		TokenID:   claims.TokenID,
		Token:     signed,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// ValidateSubscriberToken checks signature, expiry, and the revocation store.
func (s *Service) ValidateSubscriberToken(ctx context.Context, raw string) (ports.AccessClaims, error) {
	claims, err := s.tokenSigner.ParseAndValidate(raw)
	if err != nil {
		return ports.AccessClaims{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !claims.ExpiresAt.After(s.nowFn()) {
		return ports.AccessClaims{}, domain.ErrTokenExpired
	}
	if s.revocations != nil {
		revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
		if err == nil && revoked {
			return ports.AccessClaims{}, domain.ErrTokenRevoked
		}
	}
	token, err := s.tokens.GetByID(ctx, claims.TokenID)
	if err != nil {
		return ports.AccessClaims{}, domain.ErrUnauthorized
	}
	if token.RevokedAt != nil {
		return ports.AccessClaims{}, domain.ErrTokenRevoked
	}
	if token.SecretHash != fingerprintToken(raw) {
		return ports.AccessClaims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

// RevokeSubscriberToken revokes a token record and marks the revocation in
// cache so validation rejects it immediately.
func (s *Service) RevokeSubscriberToken(ctx context.Context, tokenID uuid.UUID) (TokenView, error) {
	token, err := s.tokens.GetByID(ctx, tokenID)
	if err != nil {
		return TokenView{}, err
	}
	now := s.nowFn()
	if err := s.tokens.Revoke(ctx, tokenID, now); err != nil {
		return TokenView{}, fmt.Errorf("revoke token: %w", err)
	}
	if s.revocations != nil {
		_ = s.revocations.MarkRevoked(ctx, tokenID, token.ExpiresAt)
	}
	token.RevokedAt = &now
	return toTokenView(token), nil
}

// ListSubscriberTokens lists issued token records, newest first.
func (s *Service) ListSubscriberTokens(ctx context.Context, limit, offset int) ([]TokenView, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	tokens, err := s.tokens.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	views := make([]TokenView, 0, len(tokens))
	for _, t := range tokens {
		views = append(views, toTokenView(t))
	}
	return views, nil
}

// ValidateAdminKey compares a presented admin API key against the configured
// hash. Admin endpoints fail closed when no hash is configured.
func (s *Service) ValidateAdminKey(raw string) error {
	if s.cfg.AdminKeyHash == "" || raw == "" {
		return domain.ErrUnauthorized
	}
	if err := s.hasher.Compare(s.cfg.AdminKeyHash, raw); err != nil {
		return domain.ErrUnauthorized
	}
	return nil
}

// PublicJWKs returns the token verification keys for internal consumers.
func (s *Service) PublicJWKs() ([]map[string]any, error) {
	return s.tokenSigner.PublicJWKs()
}

func toTokenView(t domain.SubscriberToken) TokenView {
	return TokenView{
		TokenID:         t.ID,
		SubscriberEmail: t.SubscriberEmail,
		Scope:           t.Scope,
		IssuedAt:        t.IssuedAt,
		ExpiresAt:       t.ExpiresAt,
		RevokedAt:       t.RevokedAt,
	}
}
