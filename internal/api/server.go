package api

import (
	"net/http"
	"time"

	appapi "github.com/futig/app-builder/internal/api/app"
	"github.com/futig/app-builder/internal/api/docs"
	"github.com/futig/app-builder/internal/api/middleware"
	webapi "github.com/futig/app-builder/internal/api/web"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// requestTimeout covers a full model round trip plus persistence.
const requestTimeout = 150 * time.Second

// SetupRouter creates and configures the HTTP router
func SetupRouter(appHandler *appapi.Handler, webHandler *webapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	docs.RegisterRoutes(r)

	appapi.RegisterRoutes(r, appHandler)
	webapi.RegisterRoutes(r, webHandler)

	return r
}
