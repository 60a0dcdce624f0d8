// internal/app/features/enrollment/capture.go
package enrollment

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
)

type captureRequest struct {
	Courses []string `json:"courses" validate:"required,min=1"`
}

type captureResponse struct {
	OrderID  string `json:"order_id"`
	Currency string `json:"currency"`
	Amount   int    `json:"amount"` // minor units
}

// HandleCapture prices the requested courses and opens a gateway order for
// the total. Nothing is persisted; enrollment happens only after the
// client-side payment flow returns a verifiable signature.
//
// POST /enrollment/capture
func (h *Handler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid session user id"))
		return
	}

	var req captureRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.priceCourses(ctx, req.Courses, userID)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	order, err := h.Gateway.CreateOrder(ctx, total*100, h.Currency, uuid.NewString())
	if err != nil {
		respond.Err(w, h.Log, apperr.External("could not create payment order", err))
		return
	}

	respond.OK(w, "order created", captureResponse{
		OrderID:  order.OrderID,
		Currency: order.Currency,
		Amount:   order.Amount,
	})
}

// priceCourses validates every requested course and sums their prices. A
// missing course is a 404; one the user already holds is a 409.
func (h *Handler) priceCourses(ctx context.Context, ids []string, userID primitive.ObjectID) (int, error) {
	total := 0
	for _, raw := range ids {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return 0, apperr.Validation("invalid course id: " + raw)
		}
		course, err := h.Courses.GetByID(ctx, id)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return 0, apperr.NotFound("course not found: " + raw)
			}
			return 0, err
		}
		if course.HasStudent(userID) {
			return 0, apperr.Conflict("already enrolled in " + course.Name)
		}
		total += course.Price
	}
	return total, nil
}
