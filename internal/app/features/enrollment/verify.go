// internal/app/features/enrollment/verify.go
package enrollment

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	progressstore "github.com/skillforge/skillforge/internal/app/store/progress"
	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/mailer"
	"github.com/skillforge/skillforge/internal/app/system/payment"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
	"github.com/skillforge/skillforge/internal/domain/models"
)

type verifyRequest struct {
	OrderID   string   `json:"order_id" validate:"required"`
	PaymentID string   `json:"payment_id" validate:"required"`
	Signature string   `json:"signature" validate:"required"`
	Courses   []string `json:"courses" validate:"required,min=1"`
}

// HandleVerify checks the gateway's payment signature locally and, when it
// matches, enrolls the student in each paid course.
//
// The per-course side effects run sequentially with no transaction: course
// enrolled-set, user course list, fresh progress record, user progress
// list, then the confirmation email. A failed course is logged and the
// loop continues; the student was charged, so partial enrollment beats
// none. Enrollment is not re-checked here, so a race with a second capture
// resolves through the conditional enrolled-set update and the unique
// progress index rather than an up-front guard.
//
// POST /enrollment/verify
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid session user id"))
		return
	}

	var req verifyRequest
	if err := respond.DecodeJSON(r, &req); err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	if !payment.VerifySignature(h.Secret, req.OrderID, req.PaymentID, req.Signature) {
		respond.Err(w, h.Log, apperr.Validation("payment verification failed"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
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

	var failed []string
	for _, raw := range req.Courses {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			failed = append(failed, raw)
			continue
		}
		if err := h.enrollOne(ctx, account, id); err != nil {
			h.Log.Error("enrollment side effects failed",
				zap.String("user_id", userID.Hex()),
				zap.String("course_id", raw),
				zap.Error(err))
			failed = append(failed, raw)
		}
	}

	if len(failed) > 0 {
		respond.Err(w, h.Log, apperr.Integrity(
			"payment verified but enrollment incomplete for: "+strings.Join(failed, ", "), nil))
		return
	}

	respond.OK(w, "payment verified and courses enrolled", nil)
}

// enrollOne applies the enrollment side effects for a single course. A
// course already holding the student (verification replay) is not an
// error; the conditional update and duplicate-key sentinel absorb it.
func (h *Handler) enrollOne(ctx context.Context, account *models.User, courseID primitive.ObjectID) error {
	course, err := h.Courses.GetByID(ctx, courseID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("course not found")
		}
		return err
	}

	enrolled, err := h.Courses.AddStudent(ctx, courseID, account.ID)
	if err != nil {
		return err
	}
	if !enrolled {
		// Already in the enrolled set; nothing more to do.
		return nil
	}

	if err := h.Users.AddCourse(ctx, account.ID, courseID); err != nil {
		return err
	}

	prog, err := h.Progress.Create(ctx, account.ID, courseID)
	switch err {
	case nil:
		if err := h.Users.AddProgress(ctx, account.ID, prog.ID); err != nil {
			return err
		}
	case progressstore.ErrDuplicate:
		// A record survives from an earlier partial run; keep it.
	default:
		return err
	}

	email := mailer.BuildEnrollmentEmail(mailer.EnrollmentEmailData{
		StudentName: account.FullName(),
		CourseName:  course.Name,
		Description: course.Description,
		Thumbnail:   course.Thumbnail,
	})
	email.To = account.Email
	h.enqueue(email)

	return nil
}
