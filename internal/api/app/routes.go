package app

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers app pipeline routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/parse-requirements", h.ParseRequirements)
		r.Post("/customize-ui", h.CustomizeUI)
		r.Post("/save-app", h.SaveApp)
		r.Get("/load-apps", h.LoadApps)

		r.Route("/apps/{id}", func(r chi.Router) {
			r.Get("/", h.GetApp)
			r.Get("/export", h.ExportApp)
		})
	})
}
