package ports

import (
	"context"

	"github.com/ibs-platform/user-directory/internal/core/domain"
)

// TokenSigner issues and verifies the signed bearer credentials.
type TokenSigner interface {
	// Issue builds a signed token for the principal: subject = login name,
	// roles claim = the principal's authority list, bounded by the configured
	// lifetime.
	Issue(principal *domain.Principal) (string, error)
	// Verify reports whether the token carries a valid signature and has not
	// expired. It never returns an error; any malformed, unsigned, or expired
	// token is simply false.
	Verify(token string) bool
	// SubjectOf extracts the subject claim. Callers that need the subject must
	// Verify first; an unparseable token yields domain.ErrMalformedToken.
	SubjectOf(token string) (string, error)
}

// PrincipalResolver loads a user by login name as an authenticatable principal.
type PrincipalResolver interface {
	Resolve(ctx context.Context, username string) (*domain.Principal, error)
}

// LoginResult is returned to the client after a successful authentication.
type LoginResult struct {
	Token    string
	Role     string
	UserID   string
	Username string
}

// AuthService authenticates a login-name/password pair.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

// LoginThrottle counts failed authentication attempts per login name.
// Implementations fail open: a throttle-store error must not block logins.
type LoginThrottle interface {
	// Blocked reports whether the login name has exceeded the failure budget.
	Blocked(ctx context.Context, username string) (bool, error)
	// RecordFailure increments the failure counter for the login name.
	RecordFailure(ctx context.Context, username string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}
