// internal/app/features/sections/routes.go
package sections

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
)

// Routes mounts the section endpoints, all instructor only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRole("instructor"))

	r.Post("/", h.HandleCreate)
	r.Patch("/{id}", h.HandleRename)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

// sectionIDParam reads the {id} URL parameter as an ObjectID.
func sectionIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid section id")
	}
	return id, nil
}
