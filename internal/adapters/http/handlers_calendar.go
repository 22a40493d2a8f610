package http

import (
	"net/http"

	"github.com/contentpipe/scheduler/internal/application"
)

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	req := application.CalendarRequest{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}

	resp, err := h.service.Calendar(r.Context(), req)
	if err != nil {
		writeMappedError(w, r, "calendar", err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}
