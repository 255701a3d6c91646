// Package rbac provides role-based access control for Vypar.
//
// Authorization is declarative: the application registers one capability
// table mapping operation names to allowed role sets, and a single Authorize
// interceptor consults it. Handlers never check role strings themselves.
package rbac

import (
	"net/http"
	"sync"

	"github.com/shashiranjanraj/vypar/pkg/auth"
	"github.com/shashiranjanraj/vypar/pkg/response"
)

// Policy maps an operation name (e.g. "orders.create") to the role codes
// allowed to perform it.
type Policy map[string][]string

var (
	mu     sync.RWMutex
	policy = Policy{}
)

// SetPolicy installs the capability table. Call once at boot, before the
// router starts serving.
func SetPolicy(p Policy) {
	mu.Lock()
	defer mu.Unlock()
	policy = p
}

// Allowed reports whether id may perform op. Operations absent from the
// table are denied for everyone.
func Allowed(id auth.Identity, op string) bool {
	mu.RLock()
	roles, ok := policy[op]
	mu.RUnlock()

	if !ok {
		return false
	}
	return id.HasAnyRole(roles...)
}

// Authorize returns middleware gating one operation. Anonymous requests get
// 401; authenticated requests without an allowed role get 403. The ownership
// gate, where an operation has one, runs afterwards inside the service.
func Authorize(op string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w, "authentication required")
				return
			}
			if !Allowed(id, op) {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
