package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/contentpipe/scheduler/internal/application"
	"github.com/contentpipe/scheduler/internal/domain"
)

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	var req application.IssueTokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, r, "issue_token", "malformed request body")
		return
	}

	resp, err := h.service.IssueSubscriberToken(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, "issue_token", err)
		return
	}

	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) listTokens(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 0)
	offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

	tokens, err := h.service.ListSubscriberTokens(r.Context(), limit, offset)
	if err != nil {
		writeMappedError(w, r, "list_tokens", err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"tokens": tokens})
}

func (h *Handler) revokeToken(w http.ResponseWriter, r *http.Request) {
	tokenID, err := uuid.Parse(chi.URLParam(r, "token_id"))
	if err != nil {
		writeValidationError(w, r, "revoke_token", "token_id must be a valid UUID")
		return
	}

	token, err := h.service.RevokeSubscriberToken(r.Context(), tokenID)
	if err != nil {
		writeMappedError(w, r, "revoke_token", err)
		return
	}

	writeSuccess(w, http.StatusOK, token)
}

// validateToken is the one public endpoint: downstream consumers present a
// subscriber token and get back its claims if it is still good.
func (h *Handler) validateToken(w http.ResponseWriter, r *http.Request) {
	raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		var body struct {
			Token string `json:"token"`
		}
		if decodeErr := decodeBody(r, &body); decodeErr != nil || body.Token == "" {
			writeMappedError(w, r, "validate_token", domain.ErrUnauthorized)
			return
		}
		raw = body.Token
	}

	claims, err := h.service.ValidateSubscriberToken(r.Context(), raw)
	if err != nil {
		writeMappedError(w, r, "validate_token", err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"token_id":         claims.TokenID,
		"subscriber_email": claims.SubscriberEmail,
		"scope":            claims.Scope,
		"issued_at":        claims.IssuedAt,
		"expires_at":       claims.ExpiresAt,
	})
}
