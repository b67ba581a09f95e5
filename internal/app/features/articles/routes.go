// internal/app/features/articles/routes.go
package articles

import (
	"github.com/go-chi/chi/v5"

	"github.com/vitamove/vitamove-server/internal/app/system/auth"
)

// Routes returns the router for the article feature, mounted at /articles.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet) // id or slug
	r.Post("/{id}/like", h.ServeLike)

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireAdmin)
		ar.Post("/", h.ServeCreate)
		ar.Patch("/{id}", h.ServeUpdate)
		ar.Delete("/{id}", h.ServeDelete)
	})

	return r
}
