// internal/app/features/resetpassword/routes.go
package resetpassword

import "github.com/go-chi/chi/v5"

// Routes mounts the reset endpoints. Both are public by nature.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/reset-password-token", h.HandleCreateToken)
	r.Post("/reset-password", h.HandleReset)
	return r
}
