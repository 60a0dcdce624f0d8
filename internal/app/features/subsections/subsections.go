// internal/app/features/subsections/subsections.go
package subsections

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	subsectionstore "github.com/skillforge/skillforge/internal/app/store/subsections"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
	"github.com/skillforge/skillforge/internal/domain/models"
)

// maxUploadBytes caps lecture video uploads.
const maxUploadBytes = 512 << 20

// HandleCreate adds a lecture to a section from a multipart form. Required
// fields: course_id, section_id, title, duration (seconds), and the video
// file. description is optional.
//
// POST /subsections
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Err(w, h.Log, apperr.Validation("request must be a multipart form"))
		return
	}

	courseStr := r.FormValue("course_id")
	sectionStr := r.FormValue("section_id")
	title := r.FormValue("title")
	duration := r.FormValue("duration")
	if courseStr == "" || sectionStr == "" || title == "" || duration == "" {
		respond.Err(w, h.Log, apperr.Validation("course_id, section_id, title, and duration are required"))
		return
	}
	courseID, err := primitive.ObjectIDFromHex(courseStr)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}
	sectionID, err := primitive.ObjectIDFromHex(sectionStr)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid section id"))
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("video file is required"))
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.ownedCourse(ctx, courseID, r); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	if _, err := h.Sections.GetByID(ctx, sectionID); err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("section not found"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	videoURL, err := h.Media.Upload(ctx, h.MediaFolder, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respond.Err(w, h.Log, apperr.External("video upload failed", err))
		return
	}

	created, err := h.SubSections.Create(ctx, models.SubSection{
		Title:       title,
		Duration:    duration,
		Description: r.FormValue("description"),
		VideoURL:    videoURL,
	})
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	if err := h.Sections.AddSubSection(ctx, sectionID, created.ID); err != nil {
		respond.Err(w, h.Log, apperr.Integrity("lecture created but not attached to section", err))
		return
	}

	respond.Created(w, "lecture created", created)
}

// HandleUpdate edits lecture fields from a multipart form. All fields are
// optional; a supplied video file replaces the stored one.
//
// PATCH /subsections/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := lectureIDParam(r)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Err(w, h.Log, apperr.Validation("request must be a multipart form"))
		return
	}
	courseID, err := primitive.ObjectIDFromHex(r.FormValue("course_id"))
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.ownedCourse(ctx, courseID, r); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	if _, err := h.SubSections.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("lecture not found"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	var upd subsectionstore.Update
	if v, ok := formValue(r, "title"); ok {
		upd.Title = &v
	}
	if v, ok := formValue(r, "duration"); ok {
		upd.Duration = &v
	}
	if v, ok := formValue(r, "description"); ok {
		upd.Description = &v
	}
	if file, header, err := r.FormFile("video"); err == nil {
		defer file.Close()
		url, err := h.Media.Upload(ctx, h.MediaFolder, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
		if err != nil {
			respond.Err(w, h.Log, apperr.External("video upload failed", err))
			return
		}
		upd.VideoURL = &url
	}

	if err := h.SubSections.Update(ctx, id, upd); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	updated, err := h.SubSections.GetByID(ctx, id)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	respond.OK(w, "lecture updated", updated)
}

type deleteRequest struct {
	CourseID  string `json:"course_id" validate:"required"`
	SectionID string `json:"section_id" validate:"required"`
}

// HandleDelete detaches a lecture from its section and removes it. The
// stored video object is not deleted.
//
// DELETE /subsections/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := lectureIDParam(r)
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
	sectionID, err := primitive.ObjectIDFromHex(req.SectionID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid section id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.ownedCourse(ctx, courseID, r); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	if _, err := h.SubSections.GetByID(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("lecture not found"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	if err := h.Sections.RemoveSubSection(ctx, sectionID, id); err != nil {
		respond.Err(w, h.Log, apperr.Integrity("lecture not detached from section", err))
		return
	}
	if _, err := h.SubSections.Delete(ctx, id); err != nil {
		respond.Err(w, h.Log, apperr.Integrity("lecture detached but not removed", err))
		return
	}

	respond.OK(w, "lecture deleted", nil)
}

// formValue reports whether the multipart form carried the key at all,
// distinguishing "absent" from "set to empty".
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	vs, ok := r.MultipartForm.Value[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
