// internal/app/features/sections/handler.go

// Package sections manages the section layer of a course's content tree.
package sections

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	coursestore "github.com/skillforge/skillforge/internal/app/store/courses"
	sectionstore "github.com/skillforge/skillforge/internal/app/store/sections"
	subsectionstore "github.com/skillforge/skillforge/internal/app/store/subsections"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
)

// Handler owns the section endpoints. Every operation is instructor only
// and scoped to a course the caller owns.
type Handler struct {
	Courses     *coursestore.Store
	Sections    *sectionstore.Store
	SubSections *subsectionstore.Store
	Log         *zap.Logger
}

// NewHandler constructs a sections Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Courses:     coursestore.New(db),
		Sections:    sectionstore.New(db),
		SubSections: subsectionstore.New(db),
		Log:         logger,
	}
}

// ownedCourse loads courseID and verifies the request user is its
// instructor.
func (h *Handler) ownedCourse(ctx context.Context, courseID primitive.ObjectID, r *http.Request) error {
	user, _ := auth.CurrentUser(r)
	course, err := h.Courses.GetByID(ctx, courseID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("course not found")
		}
		return err
	}
	if course.Instructor.Hex() != user.ID {
		return apperr.Authorization("only the course instructor can modify its content")
	}
	return nil
}
