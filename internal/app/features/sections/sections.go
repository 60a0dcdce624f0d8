// internal/app/features/sections/sections.go
package sections

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
	"github.com/skillforge/skillforge/internal/domain/models"
)

type createRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// HandleCreate adds a section to the end of a course's content list.
//
// POST /sections
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.ownedCourse(ctx, courseID, r); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	created, err := h.Sections.Create(ctx, models.Section{Name: req.Name})
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	if err := h.Courses.AddSection(ctx, courseID, created.ID); err != nil {
		respond.Err(w, h.Log, apperr.Integrity("section created but not attached to course", err))
		return
	}

	respond.Created(w, "section created", created)
}

type renameRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// HandleRename changes a section's name.
//
// PATCH /sections/{id}
func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	id, err := sectionIDParam(r)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	var req renameRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.ownedCourse(ctx, courseID, r); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	if _, err := h.Sections.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("section not found"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}
	if err := h.Sections.Rename(ctx, id, req.Name); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	updated, err := h.Sections.GetByID(ctx, id)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	respond.OK(w, "section renamed", updated)
}

type deleteRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

// HandleDelete detaches a section from its course and removes it along
// with its lectures.
//
// DELETE /sections/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := sectionIDParam(r)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	var req deleteRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.ownedCourse(ctx, courseID, r); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	sec, err := h.Sections.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("section not found"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	if err := h.Courses.RemoveSection(ctx, courseID, id); err != nil {
		respond.Err(w, h.Log, apperr.Integrity("section not detached from course", err))
		return
	}
	if _, err := h.SubSections.DeleteMany(ctx, sec.SubSections); err != nil {
		respond.Err(w, h.Log, apperr.Integrity("section detached but its lectures were not removed", err))
		return
	}
	if _, err := h.Sections.Delete(ctx, id); err != nil {
		respond.Err(w, h.Log, apperr.Integrity("section detached but not removed", err))
		return
	}

	respond.OK(w, "section deleted", nil)
}
