package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shashiranjanraj/vypar/pkg/auth"
)

func authnHandler(t *testing.T, ts *auth.TokenService) (http.Handler, *auth.Identity) {
	t.Helper()

	var seen auth.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := auth.IdentityFromCtx(r.Context()); ok {
			seen = id
		}
		w.WriteHeader(http.StatusOK)
	})
	return Authn(ts)(next), &seen
}

func TestAuthnAnonymousPassesThrough(t *testing.T) {
	ts := auth.NewTokenService("secret", "test", time.Hour, 3*time.Hour)
	h, seen := authnHandler(t, ts)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.Email != "" {
		t.Errorf("anonymous request carried identity %v", seen)
	}
}

func TestAuthnBadCredentialFails(t *testing.T) {
	ts := auth.NewTokenService("secret", "test", time.Hour, 3*time.Hour)
	h, _ := authnHandler(t, ts)

	for _, token := range []string{"garbage", "a.b.c"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, rec.Code)
		}
	}
}

func TestAuthnRejectsRefreshToken(t *testing.T) {
	ts := auth.NewTokenService("secret", "test", time.Hour, 3*time.Hour)
	pair, err := ts.IssueTokenPair("alice@example.com", []string{"USER"})
	if err != nil {
		t.Fatal(err)
	}
	h, _ := authnHandler(t, ts)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token on API surface: status = %d, want 401", rec.Code)
	}
}

func TestAuthnValidTokenAttachesIdentity(t *testing.T) {
	ts := auth.NewTokenService("secret", "test", time.Hour, 3*time.Hour)
	pair, err := ts.IssueTokenPair("alice@example.com", []string{"USER", "ADMIN"})
	if err != nil {
		t.Fatal(err)
	}
	h, seen := authnHandler(t, ts)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.Email != "alice@example.com" {
		t.Errorf("identity email = %q", seen.Email)
	}
	if !seen.HasRole("ADMIN") {
		t.Errorf("identity roles = %v, want ADMIN present", seen.Roles)
	}
}
