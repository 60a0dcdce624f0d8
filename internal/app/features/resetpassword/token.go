// internal/app/features/resetpassword/token.go
package resetpassword

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/mailer"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
)

// TokenTTL is how long an issued reset token stays valid.
const TokenTTL = time.Hour

type tokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleCreateToken generates a reset token, stores it with a one-hour
// expiry, and emails the reset link.
//
// POST /reset-password-token
func (h *Handler) HandleCreateToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	token, err := newToken()
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	user, err := h.Users.SetResetToken(ctx, req.Email, token, time.Now().Add(TokenTTL))
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("no account with this email"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	email := mailer.BuildPasswordResetEmail(mailer.ResetEmailData{
		Name:     user.FullName(),
		ResetURL: fmt.Sprintf("%s/update-password/%s", h.BaseURL, token),
	})
	email.To = user.Email
	h.enqueue(email)

	respond.OK(w, "reset email sent", nil)
}

// newToken returns 20 random bytes hex-encoded.
func newToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
