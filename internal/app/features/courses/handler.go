// internal/app/features/courses/handler.go

// Package courses owns course CRUD, the catalog views, and the cascade
// delete that keeps back-references consistent.
package courses

import (
	"context"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	categorystore "github.com/skillforge/skillforge/internal/app/store/categories"
	coursestore "github.com/skillforge/skillforge/internal/app/store/courses"
	progressstore "github.com/skillforge/skillforge/internal/app/store/progress"
	sectionstore "github.com/skillforge/skillforge/internal/app/store/sections"
	subsectionstore "github.com/skillforge/skillforge/internal/app/store/subsections"
	userstore "github.com/skillforge/skillforge/internal/app/store/users"
)

// Uploader stores one file and returns its public URL. *media.Store
// satisfies it; tests swap in a fake.
type Uploader interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader, size int64, contentType string) (string, error)
}

// Handler owns the course endpoints. Constructed once at startup in
// bootstrap with the shared database handle, media store, and logger.
type Handler struct {
	Courses     *coursestore.Store
	Sections    *sectionstore.Store
	SubSections *subsectionstore.Store
	Categories  *categorystore.Store
	Users       *userstore.Store
	Progress    *progressstore.Store
	Media       Uploader
	MediaFolder string
	Log         *zap.Logger

	sanitizer *bluemonday.Policy
}

// NewHandler constructs a courses Handler.
func NewHandler(db *mongo.Database, media Uploader, mediaFolder string, logger *zap.Logger) *Handler {
	return &Handler{
		Courses:     coursestore.New(db),
		Sections:    sectionstore.New(db),
		SubSections: subsectionstore.New(db),
		Categories:  categorystore.New(db),
		Users:       userstore.New(db),
		Progress:    progressstore.New(db),
		Media:       media,
		MediaFolder: mediaFolder,
		Log:         logger,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

// sanitize strips unsafe markup from user-authored rich text fields.
func (h *Handler) sanitize(s string) string {
	return h.sanitizer.Sanitize(s)
}
