// internal/app/features/profile/handler.go

// Package profile owns the signed-in account surface: personal details,
// display picture, enrolled courses, the instructor dashboard, and account
// deletion.
package profile

import (
	"context"
	"io"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go.mongodb.org/mongo-driver/mongo"

	coursestore "github.com/skillforge/skillforge/internal/app/store/courses"
	profilestore "github.com/skillforge/skillforge/internal/app/store/profiles"
	progressstore "github.com/skillforge/skillforge/internal/app/store/progress"
	sectionstore "github.com/skillforge/skillforge/internal/app/store/sections"
	subsectionstore "github.com/skillforge/skillforge/internal/app/store/subsections"
	userstore "github.com/skillforge/skillforge/internal/app/store/users"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/domain/models"
)

// Uploader stores one file and returns its public URL. *media.Store
// satisfies it; tests swap in a fake.
type Uploader interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader, size int64, contentType string) (string, error)
}

// Handler owns the profile endpoints.
type Handler struct {
	Users       *userstore.Store
	Profiles    *profilestore.Store
	Courses     *coursestore.Store
	Sections    *sectionstore.Store
	SubSections *subsectionstore.Store
	Progress    *progressstore.Store
	Media       Uploader
	MediaFolder string
	SM          *auth.SessionManager
	Log         *zap.Logger
}

// NewHandler constructs a profile Handler. mediaFolder is the object store
// prefix for display pictures.
func NewHandler(db *mongo.Database, media Uploader, mediaFolder string, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:       userstore.New(db),
		Profiles:    profilestore.New(db),
		Courses:     coursestore.New(db),
		Sections:    sectionstore.New(db),
		SubSections: subsectionstore.New(db),
		Progress:    progressstore.New(db),
		Media:       media,
		MediaFolder: mediaFolder,
		SM:          sm,
		Log:         logger,
	}
}

// currentAccount loads the signed-in user's document.
func (h *Handler) currentAccount(ctx context.Context, r *http.Request) (*models.User, error) {
	user, _ := auth.CurrentUser(r)
	id, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, apperr.Validation("invalid session user id")
	}
	account, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("account not found")
		}
		return nil, err
	}
	return account, nil
}
