// internal/app/features/blogs/routes.go
package blogs

import (
	"github.com/go-chi/chi/v5"

	"github.com/vitamove/vitamove-server/internal/app/system/auth"
)

// Routes returns the router for the blog feature, mounted at /blogs.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeGet)

	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireAdmin)
		ar.Post("/", h.ServeCreate)
		ar.Patch("/{id}", h.ServeUpdate)
		ar.Delete("/{id}", h.ServeDelete)
	})

	return r
}
