package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/contentpipe/scheduler/internal/application"
)

func (h *Handler) createIdea(w http.ResponseWriter, r *http.Request) {
	var input application.IdeaInput
	if err := decodeBody(r, &input); err != nil {
		writeValidationError(w, r, "create_idea", "malformed request body")
		return
	}

	idea, err := h.service.CreateIdea(r.Context(), input)
	if err != nil {
		writeMappedError(w, r, "create_idea", err)
		return
	}

	writeSuccess(w, http.StatusCreated, idea)
}

func (h *Handler) listIdeas(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	limit := parseIntDefault(r.URL.Query().Get("limit"), 0)
	offset := parseIntDefault(r.URL.Query().Get("offset"), 0)

	ideas, err := h.service.ListIdeas(r.Context(), status, limit, offset)
	if err != nil {
		writeMappedError(w, r, "list_ideas", err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"ideas": ideas})
}

func (h *Handler) getIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "idea_id"))
	if err != nil {
		writeValidationError(w, r, "get_idea", "idea_id must be a valid UUID")
		return
	}

	idea, err := h.service.GetIdea(r.Context(), ideaID)
	if err != nil {
		writeMappedError(w, r, "get_idea", err)
		return
	}

	writeSuccess(w, http.StatusOK, idea)
}

func (h *Handler) getIdeaRouting(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "idea_id"))
	if err != nil {
		writeValidationError(w, r, "get_idea_routing", "idea_id must be a valid UUID")
		return
	}

	resp, err := h.service.RoutingForIdea(r.Context(), ideaID)
	if err != nil {
		writeMappedError(w, r, "get_idea_routing", err)
		return
	}

	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) routeIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "idea_id"))
	if err != nil {
		writeValidationError(w, r, "route_idea", "idea_id must be a valid UUID")
		return
	}

	var req application.RouteRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			writeValidationError(w, r, "route_idea", "malformed request body")
			return
		}
	}

	resp, err := h.service.RouteIdea(r.Context(), ideaID, req)
	if err != nil {
		writeMappedError(w, r, "route_idea", err)
		return
	}

	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) publishIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "idea_id"))
	if err != nil {
		writeValidationError(w, r, "publish_idea", "idea_id must be a valid UUID")
		return
	}

	if err := h.service.PublishIdea(r.Context(), ideaID); err != nil {
		writeMappedError(w, r, "publish_idea", err)
		return
	}

	writeMessage(w, http.StatusOK, "idea published")
}

func (h *Handler) cancelIdea(w http.ResponseWriter, r *http.Request) {
	ideaID, err := uuid.Parse(chi.URLParam(r, "idea_id"))
	if err != nil {
		writeValidationError(w, r, "cancel_idea", "idea_id must be a valid UUID")
		return
	}

	if err := h.service.CancelIdea(r.Context(), ideaID); err != nil {
		writeMappedError(w, r, "cancel_idea", err)
		return
	}

	writeMessage(w, http.StatusOK, "idea cancelled")
}
