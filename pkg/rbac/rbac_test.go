package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/vypar/pkg/auth"
)

func testPolicy() Policy {
	return Policy{
		"orders.create": {"USER", "ADMIN"},
		"users.list":    {"ADMIN"},
	}
}

func TestAllowed(t *testing.T) {
	SetPolicy(testPolicy())

	user := auth.Identity{Email: "u@example.com", Roles: []string{"USER"}}
	admin := auth.Identity{Email: "a@example.com", Roles: []string{"ADMIN"}}

	if !Allowed(user, "orders.create") {
		t.Error("USER should create orders")
	}
	if Allowed(user, "users.list") {
		t.Error("USER should not list users")
	}
	if !Allowed(admin, "users.list") {
		t.Error("ADMIN should list users")
	}

	// Unknown operations are denied for everyone, admins included.
	if Allowed(admin, "not.registered") {
		t.Error("unregistered operation should be denied")
	}
}

func TestAuthorizeMiddleware(t *testing.T) {
	SetPolicy(testPolicy())

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := Authorize("users.list")(next)

	// Anonymous → 401.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", rec.Code)
	}

	// Authenticated without the role → 403.
	user := auth.Identity{Email: "u@example.com", Roles: []string{"USER"}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), user))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong role: status = %d, want 403", rec.Code)
	}

	// Authenticated with the role → through.
	admin := auth.Identity{Email: "a@example.com", Roles: []string{"ADMIN"}}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), admin))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("allowed role: status = %d, want 200", rec.Code)
	}
}
