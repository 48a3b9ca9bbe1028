package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ibs-platform/user-directory/internal/core/domain"
	"github.com/ibs-platform/user-directory/internal/core/ports"
)

// dummyHash is compared against when the login name resolves to nothing, so
// the unknown-user path costs one bcrypt comparison like every other path.
// The distinction between "user not found" and "wrong password" must never be
// observable externally.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService orchestrates credential verification: resolve the principal,
// compare the one-way hashed secret, issue a signed token.
type AuthService struct {
	resolver ports.PrincipalResolver
	signer   ports.TokenSigner
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

// NewAuthService builds the authenticator. throttle may be nil, in which case
// failed-attempt throttling is disabled.
func NewAuthService(resolver ports.PrincipalResolver, signer ports.TokenSigner, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{resolver: resolver, signer: signer, throttle: throttle, log: log}
}

// Login authenticates the login-name/password pair. Every credential failure
// (unknown user, disabled account, wrong password, throttled account) surfaces
// as domain.ErrAuthentication with no distinguishing detail.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrAuthentication
	}

	if blocked := s.isBlocked(ctx, username); blocked {
		return nil, domain.ErrAuthentication
	}

	principal, err := s.resolver.Resolve(ctx, username)
	if err != nil {
		// Burn a comparison so this path is not measurably faster.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.recordFailure(ctx, username)
		return nil, domain.ErrAuthentication
	}

	match := bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(password)) == nil
	if !match || !principal.Enabled {
		s.recordFailure(ctx, username)
		return nil, domain.ErrAuthentication
	}

	token, err := s.signer.Issue(principal)
	if err != nil {
		return nil, err
	}

	role := "USER"
	if len(principal.Authorities) > 0 {
		role = principal.Authorities[0]
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	s.log.Info().Str("username", username).Str("role", role).Msg("login succeeded")

	return &ports.LoginResult{
		Token:    token,
		Role:     role,
		UserID:   principal.UserID,
		Username: principal.Username,
	}, nil
}

func (s *AuthService) isBlocked(ctx context.Context, username string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.Blocked(ctx, username)
	if err != nil {
		// Fail open: an unavailable throttle store must not block logins.
		s.log.Warn().Err(err).Msg("login throttle check failed")
		return false
	}
	return blocked
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}
