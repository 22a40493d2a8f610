package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/contentpipe/scheduler/internal/application"
)

func (h *Handler) listRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.service.ListRules(r.Context())
	if err != nil {
		writeMappedError(w, r, "list_rules", err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"rules": rules})
}

func (h *Handler) createRule(w http.ResponseWriter, r *http.Request) {
	var input application.RuleInput
	if err := decodeBody(r, &input); err != nil {
		writeValidationError(w, r, "create_rule", "malformed request body")
		return
	}

	rule, err := h.service.CreateRule(r.Context(), input)
	if err != nil {
		writeMappedError(w, r, "create_rule", err)
		return
	}

	writeSuccess(w, http.StatusCreated, rule)
}

func (h *Handler) getRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := uuid.Parse(chi.URLParam(r, "rule_id"))
	if err != nil {
		writeValidationError(w, r, "get_rule", "rule_id must be a valid UUID")
		return
	}

	rule, err := h.service.GetRule(r.Context(), ruleID)
	if err != nil {
		writeMappedError(w, r, "get_rule", err)
		return
	}

	writeSuccess(w, http.StatusOK, rule)
}

func (h *Handler) updateRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := uuid.Parse(chi.URLParam(r, "rule_id"))
	if err != nil {
		writeValidationError(w, r, "update_rule", "rule_id must be a valid UUID")
		return
	}

	var input application.RuleUpdateInput
	if err := decodeBody(r, &input); err != nil {
		writeValidationError(w, r, "update_rule", "malformed request body")
		return
	}

	rule, err := h.service.UpdateRule(r.Context(), ruleID, input)
	if err != nil {
		writeMappedError(w, r, "update_rule", err)
		return
	}

	writeSuccess(w, http.StatusOK, rule)
}

func (h *Handler) deleteRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := uuid.Parse(chi.URLParam(r, "rule_id"))
	if err != nil {
		writeValidationError(w, r, "delete_rule", "rule_id must be a valid UUID")
		return
	}

	rule, err := h.service.DeleteRule(r.Context(), ruleID)
	if err != nil {
		writeMappedError(w, r, "delete_rule", err)
		return
	}

	writeSuccess(w, http.StatusOK, rule)
}
