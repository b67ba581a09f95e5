// internal/app/features/purchases/routes.go
package purchases

import (
	"github.com/go-chi/chi/v5"

	"github.com/vitamove/vitamove-server/internal/app/system/auth"
)

// Routes returns the router for the purchase feature, mounted at /purchases.
// Everything here is admin-only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireAdmin)
	r.Post("/", h.ServeCreate)
	r.Get("/", h.ServeList)
	r.Delete("/{id}", h.ServeRevoke)

	return r
}
