package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ibs-platform/user-directory/internal/core/domain"
	"github.com/ibs-platform/user-directory/internal/core/ports"
)

// PrincipalResolver loads a user record by login name and exposes it as an
// authenticatable principal with derived authorities.
type PrincipalResolver struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewPrincipalResolver(users ports.UserRepository, log zerolog.Logger) *PrincipalResolver {
	return &PrincipalResolver{users: users, log: log}
}

// Resolve looks the user up by exact login-name match. The single derived
// authority is the user's role name verbatim; any "ROLE_" style prefixing is a
// presentation-layer concern and is not applied here.
func (r *PrincipalResolver) Resolve(ctx context.Context, username string) (*domain.Principal, error) {
	user, err := r.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("resolve principal: %w", err)
	}

	return &domain.Principal{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Enabled:      user.Active,
		Authorities:  []string{user.RoleName},
		UserID:       user.ID,
	}, nil
}
