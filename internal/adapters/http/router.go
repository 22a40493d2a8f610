package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contentpipe/scheduler/internal/application"
)

// Handler is the HTTP adapter entrypoint for scheduler use-cases.
// Keeping only application dependency here preserves clean adapter boundaries.
type Handler struct {
	service *application.Service
}

// NewHandler constructs an HTTP handler bound to application service.
func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

// NewRouter registers scheduler HTTP routes and middleware stack.
// Centralizing routes here ensures consistent auth and error behavior across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/scheduler/v1", func(r chi.Router) {
		r.Post("/tokens/validate", handler.validateToken)

		r.Group(func(r chi.Router) {
			r.Use(handler.adminAuthMiddleware)

			r.Get("/calendar", handler.calendar)

			r.Get("/rules", handler.listRules)
			r.Post("/rules", handler.createRule)
			r.Get("/rules/{rule_id}", handler.getRule)
			r.Patch("/rules/{rule_id}", handler.updateRule)
			r.Delete("/rules/{rule_id}", handler.deleteRule)

			r.Post("/ideas", handler.createIdea)
			r.Get("/ideas", handler.listIdeas)
			r.Get("/ideas/{idea_id}", handler.getIdea)
			r.Get("/ideas/{idea_id}/routing", handler.getIdeaRouting)
			r.Post("/ideas/{idea_id}/route", handler.routeIdea)
			r.Post("/ideas/{idea_id}/publish", handler.publishIdea)
			r.Post("/ideas/{idea_id}/cancel", handler.cancelIdea)

			r.Post("/changelog", handler.captureChangelog)
			r.Get("/changelog", handler.listChangelog)

			r.Post("/tokens", handler.issueToken)
			r.Get("/tokens", handler.listTokens)
			r.Delete("/tokens/{token_id}", handler.revokeToken)
		})
	})

	return r
}
