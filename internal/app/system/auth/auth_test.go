package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	m, err := NewSessionManager("0123456789abcdef0123456789abcdef", "skillforge-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return m
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "s", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestSignInThenLoad(t *testing.T) {
	m := newTestManager(t)

	// Sign in and capture the cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	err := m.SignIn(rec, req, SessionUser{ID: "u1", Name: "Ada Lovelace", Email: "ada@example.com", Role: "instructor"})
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// Replay the cookie through LoadSessionUser.
	var got *SessionUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	})
	req2 := httptest.NewRequest("GET", "/me", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	m.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("expected current user in context")
	}
	if got.ID != "u1" || got.Role != "instructor" {
		t.Errorf("got user %+v", got)
	}
}

func TestRequireSignedIn_Unauthenticated(t *testing.T) {
	m := newTestManager(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)

	m.RequireSignedIn(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	m := newTestManager(t)
	mw := m.RequireRole("instructor")

	t.Run("wrong role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := WithTestUser(httptest.NewRequest("POST", "/courses", nil),
			&SessionUser{ID: "u1", Role: "student"})

		mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("next handler should not run")
		})).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("allowed role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := WithTestUser(httptest.NewRequest("POST", "/courses", nil),
			&SessionUser{ID: "u1", Role: "instructor"})

		called := false
		mw(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		})).ServeHTTP(rec, req)

		if !called {
			t.Error("expected next handler to run")
		}
	})
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected non-matching password to fail")
	}
}
