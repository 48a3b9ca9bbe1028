package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ibs-platform/user-directory/internal/core/domain"
)

// HS256 needs at least a 256-bit key.
const minSecretBytes = 32

// TokenSigner issues and verifies HS256-signed bearer tokens. The key and
// lifetime are fixed at construction; the signer holds no other state, so a
// single instance is safe for concurrent use.
type TokenSigner struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenSigner(secret string, lifetime time.Duration) *TokenSigner {
	return &TokenSigner{secret: []byte(secret), lifetime: lifetime}
}

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issue builds a token with subject = login name, a roles claim, issued-at and
// expiry. The authority list is copied before serialization so concurrent
// mutation of the source slice cannot corrupt the claim.
func (s *TokenSigner) Issue(principal *domain.Principal) (string, error) {
	if len(s.secret) < minSecretBytes {
		return "", fmt.Errorf("%w: secret must be at least %d bytes", domain.ErrSigning, minSecretBytes)
	}

	roles := append([]string(nil), principal.Authorities...)
	now := time.Now().UTC()

	claims := tokenClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}
	return token, nil
}

// Verify reports whether the token is well formed, correctly signed, and not
// expired. It never returns an error so hot-path checks stay exception-free.
func (s *TokenSigner) Verify(token string) bool {
	parsed, err := s.parse(token)
	return err == nil && parsed.Valid
}

// SubjectOf extracts the subject claim. Callers that need the subject should
// call Verify first; a token that cannot be parsed and validated yields
// domain.ErrMalformedToken.
func (s *TokenSigner) SubjectOf(token string) (string, error) {
	parsed, err := s.parse(token)
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrMalformedToken
	}
	return claims.Subject, nil
}

func (s *TokenSigner) parse(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
}
