// internal/app/features/progress/handler.go

// Package progress owns the lecture-completion endpoint.
package progress

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	progressstore "github.com/skillforge/skillforge/internal/app/store/progress"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
)

// Handler owns the progress endpoint.
type Handler struct {
	Progress *progressstore.Store
	Log      *zap.Logger
}

// NewHandler constructs a progress Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Progress: progressstore.New(db), Log: logger}
}

type markCompleteRequest struct {
	CourseID     string `json:"course_id" validate:"required"`
	SubSectionID string `json:"sub_section_id" validate:"required"`
}

// HandleMarkComplete records one lecture as completed for the signed-in
// student. The store's conditional update makes completion exactly-once;
// it cannot distinguish a missing progress record from an already-completed
// lecture, so both cases share one message.
//
// POST /progress/complete
func (h *Handler) HandleMarkComplete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid session user id"))
		return
	}

	var req markCompleteRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	courseID, err := primitive.ObjectIDFromHex(req.CourseID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}
	subSectionID, err := primitive.ObjectIDFromHex(req.SubSectionID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid lecture id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Progress.MarkComplete(ctx, userID, courseID, subSectionID); err != nil {
		if err == progressstore.ErrAlreadyCompleteOrMissing {
			respond.Err(w, h.Log, apperr.Conflict(err.Error()))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	respond.OK(w, "lecture marked complete", nil)
}
