// internal/app/features/profile/routes.go
package profile

import (
	"github.com/go-chi/chi/v5"

	"github.com/skillforge/skillforge/internal/app/system/auth"
)

// Routes mounts the profile endpoints. Everything needs a session; the
// dashboard additionally needs an instructor account.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	r.Get("/me", h.HandleMe)
	r.Patch("/", h.HandleUpdate)
	r.Put("/picture", h.HandleUpdatePicture)
	r.Get("/courses", h.HandleEnrolledCourses)
	r.Delete("/", h.HandleDelete)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole("instructor"))
		pr.Get("/dashboard", h.HandleDashboard)
	})

	return r
}
