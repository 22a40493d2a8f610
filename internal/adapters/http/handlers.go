package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/contentpipe/scheduler/internal/domain"
)

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "ok")
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "ready")
}

// adminAuthMiddleware guards the management surface with the shared admin
// key. Subscriber tokens are not accepted here.
func (h *Handler) adminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeMappedError(w, r, "admin_auth", domain.ErrUnauthorized)
			return
		}
		if err := h.service.ValidateAdminKey(key); err != nil {
			writeMappedError(w, r, "admin_auth", err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return err
	}
	return nil
}

func parseIntDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func writeMappedError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	statusCode, code, message := mapDomainError(err)
	logHTTPOperationError(r.Context(), operation, statusCode, code, message, err)
	writeError(w, statusCode, code, message)
}

func writeValidationError(w http.ResponseWriter, r *http.Request, operation, message string) {
	logHTTPOperationError(r.Context(), operation, http.StatusBadRequest, "VALIDATION_ERROR", message, nil)
	writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", message)
}
