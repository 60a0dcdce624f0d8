// internal/app/features/enrollment/handler.go

// Package enrollment owns the paid-enrollment workflow: gateway order
// capture, payment signature verification, and the per-course enrollment
// side effects that follow a verified payment.
package enrollment

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	coursestore "github.com/skillforge/skillforge/internal/app/store/courses"
	progressstore "github.com/skillforge/skillforge/internal/app/store/progress"
	userstore "github.com/skillforge/skillforge/internal/app/store/users"
	"github.com/skillforge/skillforge/internal/app/system/mailer"
	"github.com/skillforge/skillforge/internal/app/system/payment"
)

// OrderCreator creates a gateway order. *payment.Client satisfies it; tests
// swap in a stub.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amountMinor int, currency, receipt string) (payment.Order, error)
}

// Notifier queues transactional email without blocking. *notify.Pool
// satisfies it.
type Notifier interface {
	Enqueue(e mailer.Email)
}

// Handler owns the enrollment endpoints, all student only.
type Handler struct {
	Courses  *coursestore.Store
	Users    *userstore.Store
	Progress *progressstore.Store
	Gateway  OrderCreator
	Notify   Notifier
	Secret   string // gateway signing secret, verified locally
	Currency string
	Log      *zap.Logger
}

// NewHandler constructs an enrollment Handler.
func NewHandler(db *mongo.Database, gateway OrderCreator, notifier Notifier, secret, currency string, logger *zap.Logger) *Handler {
	return &Handler{
		Courses:  coursestore.New(db),
		Users:    userstore.New(db),
		Progress: progressstore.New(db),
		Gateway:  gateway,
		Notify:   notifier,
		Secret:   secret,
		Currency: currency,
		Log:      logger,
	}
}

// enqueue is nil-safe so tests without a pool do not panic.
func (h *Handler) enqueue(e mailer.Email) {
	if h.Notify != nil {
		h.Notify.Enqueue(e)
	}
}
