package http

import (
	"embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cquispe/portfolio-agent/internal/port/cache"
)

//go:embed web/index.html
var webFS embed.FS

// MountRoutes registers all routes on the given chi router. responseCache
// may be nil to disable caching of the read-only endpoints.
func MountRoutes(r chi.Router, h *Handlers, responseCache cache.Cache, cacheTTL time.Duration) {
	r.Get("/", h.HandleRoot)
	r.Get("/health", h.HandleHealth)

	r.Get("/ui", func(w http.ResponseWriter, _ *http.Request) {
		page, err := webFS.ReadFile("web/index.html")
		if err != nil {
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", h.HandleChat)

		r.Group(func(r chi.Router) {
			if responseCache != nil {
				r.Use(Cached(responseCache, cacheTTL))
			}
			r.Get("/projects", h.HandleProjects)
			r.Get("/expertise", h.HandleExpertise)
		})
	})
}
