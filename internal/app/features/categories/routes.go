// internal/app/features/categories/routes.go
package categories

import (
	"github.com/go-chi/chi/v5"

	"github.com/skillforge/skillforge/internal/app/system/auth"
)

// Routes mounts the category endpoints. Listing and details are public;
// creation is admin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.HandleList)
	r.Get("/{id}", h.HandleDetails)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))
		pr.Post("/", h.HandleCreate)
	})

	return r
}
