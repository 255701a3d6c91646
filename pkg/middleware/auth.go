package middleware

import (
	"net/http"

	"github.com/shashiranjanraj/vypar/pkg/auth"
	"github.com/shashiranjanraj/vypar/pkg/response"
)

// Authn verifies the bearer token, if one is supplied, and attaches the
// resulting identity to the request context.
//
// The two failure shapes are deliberately distinct: no Authorization header
// leaves the request anonymous (downstream Authorize decides whether that is
// acceptable), while a header that is present but malformed, expired, or of
// the wrong type fails the request with 401 on the spot.
func Authn(ts *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := auth.ExtractBearer(r.Header.Get("Authorization"))
			if !ok {
				// No credential supplied — stay anonymous.
				next.ServeHTTP(w, r)
				return
			}

			claims, err := ts.VerifyOfType(token, auth.TokenAccess)
			if err != nil {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			id := auth.Identity{Email: claims.Subject, Roles: claims.Roles}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
