package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("missing field"), http.StatusBadRequest},
		{"not found", NotFound("no such course"), http.StatusNotFound},
		{"conflict", Conflict("already enrolled"), http.StatusConflict},
		{"authorization", Authorization("instructor account required"), http.StatusForbidden},
		{"external", External("payment gateway", errors.New("timeout")), http.StatusBadGateway},
		{"integrity", Integrity("cascade incomplete", errors.New("pull failed")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"nil cause wrap", New(KindInternal, "oops"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatus_WrappedThroughFmt(t *testing.T) {
	inner := NotFound("course not found")
	outer := fmt.Errorf("capture order: %w", inner)

	if got := Status(outer); got != http.StatusNotFound {
		t.Errorf("Status(wrapped) = %d, want %d", got, http.StatusNotFound)
	}
	if got := KindOf(outer); got != KindNotFound {
		t.Errorf("KindOf(wrapped) = %v, want KindNotFound", got)
	}
}

func TestMessageOf(t *testing.T) {
	if got := MessageOf(Conflict("already enrolled in course: Go Basics")); got != "already enrolled in course: Go Basics" {
		t.Errorf("MessageOf() = %q", got)
	}
	// Unclassified errors must not leak internal detail.
	if got := MessageOf(errors.New("mongo: connection refused")); got != "internal server error" {
		t.Errorf("MessageOf(plain) = %q, want generic message", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := External("mail dispatch failed", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}
