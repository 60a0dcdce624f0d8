// internal/app/features/profile/update.go
package profile

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	profilestore "github.com/skillforge/skillforge/internal/app/store/profiles"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
	"github.com/skillforge/skillforge/internal/domain/models"
)

// accountView is the user+profile payload returned by the me and update
// endpoints.
type accountView struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
}

// HandleMe returns the signed-in user and their profile details.
//
// GET /profile/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	account, err := h.currentAccount(ctx, r)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	prof, err := h.Profiles.GetByID(ctx, account.AdditionalDetails)
	if err != nil && err != mongo.ErrNoDocuments {
		respond.Err(w, h.Log, err)
		return
	}

	respond.OK(w, "account", accountView{User: account, Profile: prof})
}

// updateRequest carries the editable account fields. Pointer fields
// distinguish "absent" from "set to empty": an absent field keeps its
// stored value.
type updateRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Gender        *string `json:"gender"`
	DateOfBirth   *string `json:"date_of_birth"`
	About         *string `json:"about"`
	ContactNumber *string `json:"contact_number"`
}

// HandleUpdate edits the user's name and profile details.
//
// PATCH /profile
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.currentAccount(ctx, r)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	if req.FirstName != nil || req.LastName != nil {
		first, last := account.FirstName, account.LastName
		if req.FirstName != nil {
			first = *req.FirstName
		}
		if req.LastName != nil {
			last = *req.LastName
		}
		if first == "" {
			respond.Err(w, h.Log, apperr.Validation("first name cannot be empty"))
			return
		}
		if err := h.Users.UpdateName(ctx, account.ID, first, last); err != nil {
			respond.Err(w, h.Log, err)
			return
		}
	}

	if req.Gender != nil || req.DateOfBirth != nil || req.About != nil || req.ContactNumber != nil {
		prof, err := h.Profiles.GetByID(ctx, account.AdditionalDetails)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				respond.Err(w, h.Log, apperr.NotFound("profile not found"))
				return
			}
			respond.Err(w, h.Log, err)
			return
		}
		upd := profilestore.Update{
			Gender:        prof.Gender,
			DateOfBirth:   prof.DateOfBirth,
			About:         prof.About,
			ContactNumber: prof.ContactNumber,
		}
		if req.Gender != nil {
			upd.Gender = *req.Gender
		}
		if req.DateOfBirth != nil {
			upd.DateOfBirth = *req.DateOfBirth
		}
		if req.About != nil {
			upd.About = *req.About
		}
		if req.ContactNumber != nil {
			upd.ContactNumber = *req.ContactNumber
		}
		if err := h.Profiles.Update(ctx, prof.ID, upd); err != nil {
			respond.Err(w, h.Log, err)
			return
		}
	}

	updated, err := h.Users.GetByID(ctx, account.ID)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	prof, err := h.Profiles.GetByID(ctx, updated.AdditionalDetails)
	if err != nil && err != mongo.ErrNoDocuments {
		respond.Err(w, h.Log, err)
		return
	}
	respond.OK(w, "profile updated", accountView{User: updated, Profile: prof})
}

// maxPictureBytes caps display picture uploads.
const maxPictureBytes = 16 << 20

// HandleUpdatePicture replaces the user's display picture via multipart
// upload. The previous media object is not deleted.
//
// PUT /profile/picture
func (h *Handler) HandleUpdatePicture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPictureBytes); err != nil {
		respond.Err(w, h.Log, apperr.Validation("request must be a multipart form"))
		return
	}
	file, header, err := r.FormFile("picture")
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("picture file is required"))
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	account, err := h.currentAccount(ctx, r)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	url, err := h.Media.Upload(ctx, h.MediaFolder, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respond.Err(w, h.Log, apperr.External("picture upload failed", err))
		return
	}
	if err := h.Users.UpdateImage(ctx, account.ID, url); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	respond.OK(w, "display picture updated", map[string]string{"image": url})
}
