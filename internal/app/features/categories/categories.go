// internal/app/features/categories/categories.go
package categories

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	categorystore "github.com/skillforge/skillforge/internal/app/store/categories"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
	"github.com/skillforge/skillforge/internal/domain/models"
)

type createRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// HandleCreate adds a category. Admin only (enforced by the router).
//
// POST /categories
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Categories.Create(ctx, models.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if err == categorystore.ErrDuplicateName {
			respond.Err(w, h.Log, apperr.Conflict(err.Error()))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	respond.Created(w, "category created", created)
}

// HandleList returns every category.
//
// GET /categories
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cats, err := h.Categories.List(ctx)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	respond.OK(w, "categories", cats)
}

// categoryPage is the catalog view of one category: its published courses
// plus suggestions drawn from the other categories.
type categoryPage struct {
	Category        models.Category `json:"category"`
	Courses         []models.Course `json:"courses"`
	DifferentCourse []models.Course `json:"different_courses"`
}

// HandleDetails returns the catalog page for one category.
//
// GET /categories/{id}
func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid category id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cat, err := h.Categories.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("category not found"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	courses, err := h.Courses.ListByIDs(ctx, cat.Courses)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	// Published courses from every other category, as suggestions.
	others, err := h.Categories.ListOthers(ctx, id)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	var otherIDs []primitive.ObjectID
	for _, o := range others {
		otherIDs = append(otherIDs, o.Courses...)
	}
	different, err := h.Courses.ListByIDs(ctx, otherIDs)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	respond.OK(w, "category details", categoryPage{
		Category:        *cat,
		Courses:         courses,
		DifferentCourse: different,
	})
}
