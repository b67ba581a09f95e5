// internal/app/features/uploads/routes.go
package uploads

import (
	"github.com/go-chi/chi/v5"

	"github.com/vitamove/vitamove-server/internal/app/system/auth"
)

// Routes returns the router for the upload feature, mounted at /uploads.
// Uploads are admin-only.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireAdmin)
	r.Post("/", h.ServeUpload)

	return r
}
