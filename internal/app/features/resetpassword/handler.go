// internal/app/features/resetpassword/handler.go

// Package resetpassword issues and redeems password-reset tokens.
package resetpassword

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/skillforge/skillforge/internal/app/store/users"
	"github.com/skillforge/skillforge/internal/app/system/mailer"
	"github.com/skillforge/skillforge/internal/app/system/notify"
)

// Handler owns the reset endpoints. BaseURL is the public frontend origin
// embedded in the emailed reset link.
type Handler struct {
	Users   *userstore.Store
	Notify  *notify.Pool
	BaseURL string
	Log     *zap.Logger
}

// NewHandler constructs a resetpassword Handler.
func NewHandler(db *mongo.Database, pool *notify.Pool, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   userstore.New(db),
		Notify:  pool,
		BaseURL: baseURL,
		Log:     logger,
	}
}

func (h *Handler) enqueue(e mailer.Email) {
	if h.Notify != nil {
		h.Notify.Enqueue(e)
	}
}
