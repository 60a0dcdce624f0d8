// internal/app/features/profile/delete.go
package profile

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
)

// HandleDelete removes the caller's profile and user documents and clears
// the session.
//
// Known limitation: course enrolled-sets and progress records referencing
// the deleted user are left in place. Course views tolerate the dangling
// ids, and the documents become unreachable once the account is gone.
//
// DELETE /profile
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.currentAccount(ctx, r)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	if _, err := h.Profiles.Delete(ctx, account.AdditionalDetails); err != nil && err != mongo.ErrNoDocuments {
		respond.Err(w, h.Log, apperr.Integrity("profile not removed", err))
		return
	}
	deleted, err := h.Users.Delete(ctx, account.ID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Integrity("profile removed but account deletion failed", err))
		return
	}
	if deleted == 0 {
		respond.Err(w, h.Log, apperr.NotFound("account not found"))
		return
	}

	if h.SM != nil {
		if err := h.SM.SignOut(w, r); err != nil {
			h.Log.Warn("session clear failed after account deletion", zap.Error(err))
		}
	}

	respond.OK(w, "account deleted", nil)
}
