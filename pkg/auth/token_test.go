package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shashiranjanraj/vypar/pkg/apperr"
)

func newTestService() *TokenService {
	return NewTokenService("test-secret", "vypar-test", time.Hour, 3*time.Hour)
}

func TestIssueAndVerify(t *testing.T) {
	s := newTestService()

	pair, err := s.IssueTokenPair("alice@example.com", []string{"USER", "ADMIN"})
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if got := pair.ExpiresAt.Sub(pair.IssuedAt); got != time.Hour {
		t.Errorf("access lifetime = %v, want 1h", got)
	}

	claims, err := s.VerifyOfType(pair.AccessToken, TokenAccess)
	if err != nil {
		t.Fatalf("VerifyOfType(access): %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if len(claims.Roles) != 2 || claims.Roles[1] != "ADMIN" {
		t.Errorf("roles = %v", claims.Roles)
	}
}

func TestVerifyRejectsWrongType(t *testing.T) {
	s := newTestService()
	pair, err := s.IssueTokenPair("alice@example.com", []string{"USER"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.VerifyOfType(pair.RefreshToken, TokenAccess); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := s.VerifyOfType(pair.AccessToken, TokenRefresh); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestVerifyRejectsExpiredAtBoundary(t *testing.T) {
	s := newTestService()
	issued := time.Now()
	s.now = func() time.Time { return issued }

	pair, err := s.IssueTokenPair("alice@example.com", nil)
	if err != nil {
		t.Fatal(err)
	}

	// One second before expiry the token still verifies.
	s.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	if _, err := s.Verify(pair.AccessToken); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}

	// At and past expiry it does not.
	s.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	_, err = s.Verify(pair.AccessToken)
	if !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("error = %q, want mention of expiry", err)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	s := newTestService()
	pair, err := s.IssueTokenPair("alice@example.com", nil)
	if err != nil {
		t.Fatal(err)
	}

	other := NewTokenService("different-secret", "vypar-test", time.Hour, 3*time.Hour)
	if _, err := other.Verify(pair.AccessToken); err == nil {
		t.Error("token verified under a different secret")
	}

	if _, err := s.Verify("not.a.token"); err == nil {
		t.Error("garbage string verified")
	}
}

func TestIssueFailsWithoutSecret(t *testing.T) {
	s := NewTokenService("", "vypar-test", time.Hour, 3*time.Hour)
	_, err := s.IssueTokenPair("alice@example.com", nil)
	if !apperr.IsKind(err, apperr.KindInternalToken) {
		t.Fatalf("expected internal token error, got %v", err)
	}
}

type staticResolver struct {
	roles map[string][]string
}

func (r staticResolver) RolesByEmail(email string) ([]string, error) {
	roles, ok := r.roles[email]
	if !ok {
		return nil, errors.New("no such user")
	}
	return roles, nil
}

func TestRefreshAccess(t *testing.T) {
	s := newTestService()
	pair, err := s.IssueTokenPair("alice@example.com", []string{"USER", "MANAGER"})
	if err != nil {
		t.Fatal(err)
	}

	// Roles changed since issuance; the refreshed token must carry the new set.
	resolver := staticResolver{roles: map[string][]string{"alice@example.com": {"USER"}}}
	refreshed, err := s.RefreshAccess(pair.RefreshToken, "alice@example.com", resolver)
	if err != nil {
		t.Fatalf("RefreshAccess: %v", err)
	}
	claims, err := s.VerifyOfType(refreshed.AccessToken, TokenAccess)
	if err != nil {
		t.Fatal(err)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "USER" {
		t.Errorf("refreshed roles = %v, want [USER]", claims.Roles)
	}
}

func TestRefreshAccessRejections(t *testing.T) {
	s := newTestService()
	pair, err := s.IssueTokenPair("alice@example.com", []string{"USER"})
	if err != nil {
		t.Fatal(err)
	}
	resolver := staticResolver{roles: map[string][]string{"alice@example.com": {"USER"}}}

	// Claimed email must match the token subject.
	if _, err := s.RefreshAccess(pair.RefreshToken, "mallory@example.com", resolver); err == nil {
		t.Error("subject mismatch accepted")
	}

	// An access token is not a refresh token.
	if _, err := s.RefreshAccess(pair.AccessToken, "alice@example.com", resolver); err == nil {
		t.Error("access token accepted for refresh")
	}

	// Unknown subjects are rejected, not re-issued with stale roles.
	empty := staticResolver{roles: map[string][]string{}}
	if _, err := s.RefreshAccess(pair.RefreshToken, "alice@example.com", empty); err == nil {
		t.Error("unknown subject accepted")
	}
}

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc123", "abc123", true},
		{"Bearer ", "", false},
		{"", "", false},
		{"Basic abc123", "", false},
		{"bearer abc123", "", false},
	}
	for _, c := range cases {
		token, ok := ExtractBearer(c.header)
		if token != c.token || ok != c.ok {
			t.Errorf("ExtractBearer(%q) = (%q, %v), want (%q, %v)", c.header, token, ok, c.token, c.ok)
		}
	}
}
