// internal/app/features/accounts/signup.go
package accounts

import (
	"context"
	"net/http"

	userstore "github.com/skillforge/skillforge/internal/app/store/users"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
	"github.com/skillforge/skillforge/internal/domain/models"
)

type signupRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	AccountType     string `json:"account_type" validate:"required"`
}

// HandleSignup creates a user plus an empty linked profile.
//
// POST /signup
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	if req.Password != req.ConfirmPassword {
		respond.Err(w, h.Log, apperr.Validation("password and confirmation do not match"))
		return
	}
	if !models.IsValidAccountType(req.AccountType) {
		respond.Err(w, h.Log, apperr.Validation("account type must be student, instructor, or admin"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	// Every user gets an empty profile to fill in later.
	profile, err := h.Profiles.Create(ctx, models.Profile{})
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	created, err := h.Users.Create(ctx, models.User{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		PasswordHash:      hash,
		AccountType:       req.AccountType,
		AdditionalDetails: profile.ID,
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			respond.Err(w, h.Log, apperr.Conflict(err.Error()))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	respond.Created(w, "account created", userView{
		ID:          created.ID.Hex(),
		FirstName:   created.FirstName,
		LastName:    created.LastName,
		Email:       created.Email,
		AccountType: created.AccountType,
	})
}
