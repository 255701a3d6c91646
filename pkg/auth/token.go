// Package auth implements the token service and request identity for Vypar.
//
// Tokens are HMAC-SHA256 signed JWTs carrying {sub, roles, iat, exp, iss, type}.
// The type claim separates access tokens from refresh tokens; every entry
// point states which kind it accepts and rejects the other outright.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shashiranjanraj/vypar/pkg/apperr"
)

// Token kinds carried in the "type" claim.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// Claims holds the typed JWT payload. Subject is the user's email.
type Claims struct {
	Roles []string `json:"roles"`
	Type  string   `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is the result of issuing tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	IssuedAt     time.Time `json:"issued_at"`
	ExpiresAt    time.Time `json:"expires_at"` // access-token expiry
}

// TokenService issues and verifies signed tokens. The signing secret and
// lifetimes are injected once at construction and never change; all methods
// are safe for unbounded concurrent use.
type TokenService struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService builds a TokenService. Zero TTLs fall back to 1h access
// and 3h refresh.
func NewTokenService(secret, issuer string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 3 * time.Hour
	}
	return &TokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssueTokenPair signs an access and a refresh token for subject with the
// given roles. A signing failure is fatal and maps to a 500.
func (s *TokenService) IssueTokenPair(subject string, roles []string) (TokenPair, error) {
	issuedAt := s.now()
	accessExp := issuedAt.Add(s.accessTTL)

	access, err := s.sign(subject, roles, TokenAccess, issuedAt, accessExp)
	if err != nil {
		return TokenPair{}, apperr.InternalToken(err)
	}

	refresh, err := s.sign(subject, roles, TokenRefresh, issuedAt, issuedAt.Add(s.refreshTTL))
	if err != nil {
		return TokenPair{}, apperr.InternalToken(err)
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		IssuedAt:     issuedAt,
		ExpiresAt:    accessExp,
	}, nil
}

func (s *TokenService) sign(subject string, roles []string, kind string, iat, exp time.Time) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("auth: signing secret not configured")
	}

	claims := Claims{
		Roles: roles,
		Type:  kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token string of either kind.
// Expired, malformed, and badly signed tokens each surface as a distinct
// Unauthenticated message; none of them fall through as anonymous.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperr.Unauthenticated("token expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, apperr.Unauthenticated("invalid token signature")
		default:
			return nil, apperr.Unauthenticated("malformed token")
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthenticated("malformed token")
	}

	return claims, nil
}

// VerifyOfType verifies tokenString and additionally requires the "type"
// claim to equal kind. A missing or mismatched type is rejected; there is no
// fallback interpretation.
func (s *TokenService) VerifyOfType(tokenString, kind string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != kind {
		return nil, apperr.Unauthenticated("wrong token type")
	}
	return claims, nil
}

// RoleResolver supplies the current roles for a subject. The refresh flow
// re-resolves roles instead of trusting the ones frozen into the old token.
type RoleResolver interface {
	RolesByEmail(email string) ([]string, error)
}

// RefreshAccess mints a fresh token pair from a refresh token. The token must
// verify as type=refresh, and claimedEmail — the identity supplied by the
// caller alongside the token — must equal the token's subject.
func (s *TokenService) RefreshAccess(refreshToken, claimedEmail string, resolver RoleResolver) (TokenPair, error) {
	claims, err := s.VerifyOfType(refreshToken, TokenRefresh)
	if err != nil {
		return TokenPair{}, err
	}

	if claims.Subject != claimedEmail {
		return TokenPair{}, apperr.Unauthenticated("refresh subject mismatch")
	}

	roles, err := resolver.RolesByEmail(claims.Subject)
	if err != nil {
		return TokenPair{}, apperr.Unauthenticated("unknown subject")
	}

	return s.IssueTokenPair(claims.Subject, roles)
}

// ExtractBearer parses an Authorization header value and returns the bearer
// token. Pure parsing, no side effects; ok is false when no bearer credential
// is present at all.
func ExtractBearer(header string) (token string, ok bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) {
		return "", false
	}
	if header[:len(prefix)] != prefix {
		return "", false
	}
	return header[len(prefix):], true
}
