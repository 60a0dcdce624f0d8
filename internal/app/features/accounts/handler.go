// internal/app/features/accounts/handler.go

// Package accounts owns signup, login, and logout. Password reset lives in
// the resetpassword feature; profile data in the profile feature.
package accounts

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	profilestore "github.com/skillforge/skillforge/internal/app/store/profiles"
	userstore "github.com/skillforge/skillforge/internal/app/store/users"
	"github.com/skillforge/skillforge/internal/app/system/auth"
)

// Handler owns the account endpoints. Constructed once at startup in
// bootstrap with the shared Mongo database handle and logger.
type Handler struct {
	Users    *userstore.Store
	Profiles *profilestore.Store
	SM       *auth.SessionManager
	Log      *zap.Logger
}

// NewHandler constructs an accounts Handler bound to the given database,
// session manager, and logger.
func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Profiles: profilestore.New(db),
		SM:       sm,
		Log:      logger,
	}
}

// userView is the safe projection of a user returned by account endpoints.
type userView struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	AccountType string `json:"account_type"`
	Image       string `json:"image,omitempty"`
}
