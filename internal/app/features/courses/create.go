// internal/app/features/courses/create.go
package courses

import (
	"context"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
	"github.com/skillforge/skillforge/internal/domain/models"
)

// maxUploadBytes caps multipart uploads (thumbnails, lecture videos).
const maxUploadBytes = 64 << 20

// HandleCreate creates a draft or published course from a multipart form.
// Required fields: name, description, what_you_will_learn, price, category,
// at least one tag, and the thumbnail file. Instructor only (enforced by
// the router).
//
// On success the course id is appended to the category's and the
// instructor's back-reference lists. If one of those appends fails the
// course stays persisted but unindexed; that surfaces as an integrity
// failure instead of being silently repaired.
//
// POST /courses
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Err(w, h.Log, apperr.Validation("request must be a multipart form"))
		return
	}

	name := r.FormValue("name")
	description := r.FormValue("description")
	whatYouWillLearn := r.FormValue("what_you_will_learn")
	priceStr := r.FormValue("price")
	categoryStr := r.FormValue("category")
	tags := r.Form["tags"]
	if name == "" || description == "" || whatYouWillLearn == "" || priceStr == "" || categoryStr == "" || len(tags) == 0 {
		respond.Err(w, h.Log, apperr.Validation("name, description, what_you_will_learn, price, category, and tags are required"))
		return
	}

	price, err := strconv.Atoi(priceStr)
	if err != nil || price < 0 {
		respond.Err(w, h.Log, apperr.Validation("price must be a non-negative integer"))
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(categoryStr)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid category id"))
		return
	}
	status := r.FormValue("status")
	if status == "" {
		status = models.CourseDraft
	}
	if !models.IsValidCourseStatus(status) {
		respond.Err(w, h.Log, apperr.Validation("status must be draft or published"))
		return
	}

	file, header, err := r.FormFile("thumbnail")
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("thumbnail file is required"))
		return
	}
	defer file.Close()

	instructorID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid session user id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// Preconditions before any mutation.
	if _, err := h.Categories.GetByID(ctx, categoryID); err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("category not found"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}
	if _, err := h.Users.GetByID(ctx, instructorID); err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("instructor profile not found"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	thumbnailURL, err := h.Media.Upload(ctx, h.MediaFolder, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respond.Err(w, h.Log, apperr.External("thumbnail upload failed", err))
		return
	}

	created, err := h.Courses.Create(ctx, models.Course{
		Name:             name,
		Description:      h.sanitize(description),
		Instructor:       instructorID,
		WhatYouWillLearn: h.sanitize(whatYouWillLearn),
		Price:            price,
		Thumbnail:        thumbnailURL,
		Tags:             tags,
		Category:         categoryID,
		Instructions:     r.Form["instructions"],
		Status:           status,
	})
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	// Back-reference appends. Both must land for the catalog to index the
	// course; a failure here leaves a dangling course and is reported, not
	// rolled back.
	if err := h.Categories.AddCourse(ctx, categoryID, created.ID); err != nil {
		respond.Err(w, h.Log, apperr.Integrity("course created but not indexed by category", err))
		return
	}
	if err := h.Users.AddCourse(ctx, instructorID, created.ID); err != nil {
		respond.Err(w, h.Log, apperr.Integrity("course created but not indexed by instructor", err))
		return
	}

	respond.Created(w, "course created", created)
}
