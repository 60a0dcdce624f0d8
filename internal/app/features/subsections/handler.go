// internal/app/features/subsections/handler.go

// Package subsections manages the lecture layer of a course's content
// tree, including lecture video uploads.
package subsections

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	coursestore "github.com/skillforge/skillforge/internal/app/store/courses"
	sectionstore "github.com/skillforge/skillforge/internal/app/store/sections"
	subsectionstore "github.com/skillforge/skillforge/internal/app/store/subsections"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
)

// Uploader stores one file and returns its public URL. *media.Store
// satisfies it; tests swap in a fake.
type Uploader interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader, size int64, contentType string) (string, error)
}

// Handler owns the lecture endpoints. Every operation is instructor only
// and scoped to a course the caller owns.
type Handler struct {
	Courses     *coursestore.Store
	Sections    *sectionstore.Store
	SubSections *subsectionstore.Store
	Media       Uploader
	MediaFolder string
	Log         *zap.Logger
}

// NewHandler constructs a subsections Handler. mediaFolder is the object
// store prefix for lecture videos.
func NewHandler(db *mongo.Database, media Uploader, mediaFolder string, logger *zap.Logger) *Handler {
	return &Handler{
		Courses:     coursestore.New(db),
		Sections:    sectionstore.New(db),
		SubSections: subsectionstore.New(db),
		Media:       media,
		MediaFolder: mediaFolder,
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

// lectureIDParam reads the {id} URL parameter as an ObjectID.
func lectureIDParam(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("invalid lecture id")
	}
	return id, nil
}
