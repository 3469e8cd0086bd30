package web

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the server-rendered mock UI routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Page)

	r.Route("/ui", func(r chi.Router) {
		r.Post("/describe", h.Describe)
		r.Post("/style", h.Style)
		r.Post("/reset", h.Reset)
	})
}
