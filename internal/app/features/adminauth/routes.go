// internal/app/features/adminauth/routes.go
package adminauth

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login/request", h.ServeLoginRequest)
	r.Post("/login/verify", h.ServeLoginVerify)
	r.Post("/logout", h.ServeLogout)
	return r
}
