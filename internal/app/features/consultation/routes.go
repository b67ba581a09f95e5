// internal/app/features/consultation/routes.go
package consultation

import (
	"github.com/go-chi/chi/v5"

	"github.com/vitamove/vitamove-server/internal/app/system/auth"
)

// Routes returns the router for the consultation feature, mounted at /consultation.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ServeSubmit)

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireAdmin)
		ar.Get("/", h.ServeList)
		ar.Patch("/{id}/status", h.ServeUpdateStatus)
	})

	return r
}
