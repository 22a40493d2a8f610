package http

import (
	"net/http"

	"github.com/contentpipe/scheduler/internal/application"
)

func (h *Handler) captureChangelog(w http.ResponseWriter, r *http.Request) {
	var input application.ChangelogInput
	if err := decodeBody(r, &input); err != nil {
		writeValidationError(w, r, "capture_changelog", "malformed request body")
		return
	}

	entry, err := h.service.CaptureChangelogEntry(r.Context(), input)
	if err != nil {
		writeMappedError(w, r, "capture_changelog", err)
		return
	}

	writeSuccess(w, http.StatusCreated, entry)
}

func (h *Handler) listChangelog(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 0)

	entries, err := h.service.ListChangelog(r.Context(), limit)
	if err != nil {
		writeMappedError(w, r, "list_changelog", err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"entries": entries})
}
