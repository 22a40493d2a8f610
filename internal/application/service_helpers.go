package application

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/contentpipe/scheduler/internal/ports"
)

// fingerprintToken computes the stored digest of an issued token. Tokens are
// too long for bcrypt; a sha256 fingerprint is enough since the signature
// already proves authenticity.
func fingerprintToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ruleUpdateParams converts the partial-update input into repository params.
// The mapping is one-to-one; keeping it here spares ports from JSON concerns.
func ruleUpdateParams(input RuleUpdateInput) ports.RuleUpdateParams {
	return ports.RuleUpdateParams{
		Name:           input.Name,
		Description:    input.Description,
		Priority:       input.Priority,
		Conditions:     input.Conditions,
		RoutesTo:       input.RoutesTo,
		YouTubeVersion: input.YouTubeVersion,
		IsActive:       input.IsActive,
	}
}
