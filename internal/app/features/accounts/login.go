// internal/app/features/accounts/login.go
package accounts

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks credentials and issues the session cookie.
//
// POST /login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Same message for unknown email and wrong password.
			respond.Err(w, h.Log, apperr.Validation("email or password is incorrect"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respond.Err(w, h.Log, apperr.Validation("email or password is incorrect"))
		return
	}

	if err := h.SM.SignIn(w, r, auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.FullName(),
		Email: user.Email,
		Role:  user.AccountType,
	}); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	respond.OK(w, "logged in", userView{
		ID:          user.ID.Hex(),
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		AccountType: user.AccountType,
		Image:       user.Image,
	})
}

// HandleLogout clears the session.
//
// POST /logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SM.SignOut(w, r); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	respond.OK(w, "logged out", nil)
}
