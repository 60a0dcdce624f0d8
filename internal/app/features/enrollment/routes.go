// internal/app/features/enrollment/routes.go
package enrollment

import (
	"github.com/go-chi/chi/v5"

	"github.com/skillforge/skillforge/internal/app/system/auth"
)

// Routes mounts the enrollment endpoints, all student only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRole("student"))

	r.Post("/capture", h.HandleCapture)
	r.Post("/verify", h.HandleVerify)
	r.Post("/success-email", h.HandleSuccessEmail)

	return r
}
