// internal/app/features/legal/routes.go
package legal

import (
	"github.com/go-chi/chi/v5"

	"github.com/vitamove/vitamove-server/internal/app/system/auth"
)

// Routes returns the router for the legal document feature, mounted at /legal.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/document", h.ServeGet)

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireAdmin)
		ar.Put("/document", h.ServePut)
	})

	return r
}
