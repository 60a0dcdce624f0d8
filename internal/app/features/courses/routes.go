// internal/app/features/courses/routes.go
package courses

import (
	"github.com/go-chi/chi/v5"

	"github.com/skillforge/skillforge/internal/app/system/auth"
)

// Routes mounts the course endpoints. The catalog and public detail view
// are open; the full view needs a session; authoring needs an instructor
// account, with per-course ownership checked in the handlers.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleListPublished)
	r.Get("/search", h.HandleSearch)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("instructor"))
		pr.Post("/", h.HandleCreate)
		pr.Get("/mine", h.HandleInstructorCourses)
		pr.Patch("/{id}", h.HandleEdit)
		pr.Put("/{id}/thumbnail", h.HandleUpdateThumbnail)
		pr.Delete("/{id}", h.HandleDelete)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/{id}/full", h.HandleFullDetails)
	})

	r.Get("/{id}", h.HandleDetails)

	return r
}
