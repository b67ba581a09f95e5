// internal/app/features/statistics/routes.go
package statistics

import "github.com/go-chi/chi/v5"

// Routes returns the router for the statistics feature, mounted at /statistics.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/global", h.ServeGlobal)
	return r
}
