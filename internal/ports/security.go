package ports

import (
	"time"

	"github.com/google/uuid"
)

// SecretHasher hashes token secrets and admin keys at rest.
type SecretHasher interface {
	Hash(secret string) (string, error)
	Compare(hash, secret string) error
}

// AccessClaims is the payload of an issued subscriber access token.
type AccessClaims struct {
	TokenID         uuid.UUID `json:"token_id"`
	SubscriberEmail string    `json:"subscriber_email"`
	Scope           string    `json:"scope"`
	IssuedAt        time.Time `json:"issued_at"`
	ExpiresAt       time.Time `json:"expires_at"`
	KeyID           string    `json:"kid"`
}

// TokenSigner signs and validates subscriber access tokens.
type TokenSigner interface {
	Sign(claims AccessClaims) (string, error)
	ParseAndValidate(token string) (AccessClaims, error)
	// PublicJWKs exposes the verification keys so downstream services can
	// validate subscriber tokens without a round trip.
	PublicJWKs() ([]map[string]any, error)
}
