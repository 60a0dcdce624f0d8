// internal/app/features/enrollment/successemail.go
package enrollment

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/mailer"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
)

type successEmailRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Amount    int    `json:"amount" validate:"required,gt=0"` // minor units
}

// HandleSuccessEmail queues a payment receipt for the signed-in student.
// Pure notification: it changes no state and may be called again if the
// first receipt went missing.
//
// POST /enrollment/success-email
func (h *Handler) HandleSuccessEmail(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid session user id"))
		return
	}

	var req successEmailRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	account, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Err(w, h.Log, apperr.NotFound("account not found"))
			return
		}
		respond.Err(w, h.Log, err)
		return
	}

	email := mailer.BuildPaymentReceiptEmail(mailer.ReceiptEmailData{
		StudentName: account.FullName(),
		OrderID:     req.OrderID,
		PaymentID:   req.PaymentID,
		Amount:      req.Amount,
		Currency:    h.Currency,
	})
	email.To = account.Email
	h.enqueue(email)

	respond.OK(w, "payment receipt queued", nil)
}
