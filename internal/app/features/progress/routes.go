// internal/app/features/progress/routes.go
package progress

import (
	"github.com/go-chi/chi/v5"

	"github.com/skillforge/skillforge/internal/app/system/auth"
)

// Routes mounts the progress endpoint, student only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRole("student"))

	r.Post("/complete", h.HandleMarkComplete)

	return r
}
