// internal/app/features/courses/edit.go
package courses

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	coursestore "github.com/skillforge/skillforge/internal/app/store/courses"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
	"github.com/skillforge/skillforge/internal/domain/models"
)

// editRequest is the explicit patch shape for a course. Absent fields keep
// their stored values; tags and instructions are replaced wholesale when
// present. Unknown keys are rejected by the decoder.
type editRequest struct {
	Name             *string   `json:"name"`
	Description      *string   `json:"description"`
	WhatYouWillLearn *string   `json:"what_you_will_learn"`
	Price            *int      `json:"price"`
	Tags             *[]string `json:"tags"`
	Category         *string   `json:"category"`
	Instructions     *[]string `json:"instructions"`
	Status           *string   `json:"status"`
}

// HandleEdit applies a partial update to the caller's own course.
//
// PATCH /courses/{id}
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}

	var req editRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	course, err := h.getOwnedCourse(ctx, id, user)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	patch := coursestore.Patch{
		Name:  req.Name,
		Price: req.Price,
		Tags:  req.Tags,
	}
	if req.Description != nil {
		clean := h.sanitize(*req.Description)
		patch.Description = &clean
	}
	if req.WhatYouWillLearn != nil {
		clean := h.sanitize(*req.WhatYouWillLearn)
		patch.WhatYouWillLearn = &clean
	}
	if req.Instructions != nil {
		patch.Instructions = req.Instructions
	}
	if req.Status != nil {
		if !models.IsValidCourseStatus(*req.Status) {
			respond.Err(w, h.Log, apperr.Validation("status must be draft or published"))
			return
		}
		patch.Status = req.Status
	}
	if req.Category != nil {
		newCat, err := primitive.ObjectIDFromHex(*req.Category)
		if err != nil {
			respond.Err(w, h.Log, apperr.Validation("invalid category id"))
			return
		}
		if _, err := h.Categories.GetByID(ctx, newCat); err != nil {
			if err == mongo.ErrNoDocuments {
				respond.Err(w, h.Log, apperr.NotFound("category not found"))
				return
			}
			respond.Err(w, h.Log, err)
			return
		}
		patch.Category = &newCat

		// Move the back-reference along with the course.
		if newCat != course.Category {
			if err := h.Categories.RemoveCourse(ctx, course.Category, course.ID); err != nil {
				respond.Err(w, h.Log, apperr.Integrity("course left indexed by old category", err))
				return
			}
			if err := h.Categories.AddCourse(ctx, newCat, course.ID); err != nil {
				respond.Err(w, h.Log, apperr.Integrity("course not indexed by new category", err))
				return
			}
		}
	}

	if err := h.Courses.Update(ctx, id, patch); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	updated, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	respond.OK(w, "course updated", updated)
}

// HandleUpdateThumbnail replaces the course thumbnail via multipart upload.
// The previous media object is not deleted.
//
// PUT /courses/{id}/thumbnail
func (h *Handler) HandleUpdateThumbnail(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Err(w, h.Log, apperr.Validation("request must be a multipart form"))
		return
	}
	file, header, err := r.FormFile("thumbnail")
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("thumbnail file is required"))
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.getOwnedCourse(ctx, id, user); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	// Upload first, then swap the stored reference.
	url, err := h.Media.Upload(ctx, h.MediaFolder, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respond.Err(w, h.Log, apperr.External("thumbnail upload failed", err))
		return
	}
	if err := h.Courses.Update(ctx, id, coursestore.Patch{Thumbnail: &url}); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	respond.OK(w, "thumbnail updated", map[string]string{"thumbnail": url})
}

// getOwnedCourse loads the course and verifies the caller is its
// instructor.
func (h *Handler) getOwnedCourse(ctx context.Context, id primitive.ObjectID, user *auth.SessionUser) (*models.Course, error) {
	course, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}
	if course.Instructor.Hex() != user.ID {
		return nil, apperr.Authorization("only the course instructor can modify it")
	}
	return course, nil
}
