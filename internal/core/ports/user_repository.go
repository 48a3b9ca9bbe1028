package ports

import (
	"context"
	"time"

	"github.com/ibs-platform/user-directory/internal/core/domain"
)

// ReportFilter carries the query parameters for the user report.
// Role is matched case-insensitively. Zero time bounds are open (not applied);
// non-zero bounds are inclusive on created_at.
type ReportFilter struct {
	Role      string
	StartDate time.Time
	EndDate   time.Time
	// Skip/Limit are 0-based offsets; the service converts the API's 1-based
	// page before the repository sees it.
	Skip  int64
	Limit int64
	// SortField empty = implementation-defined stable order.
	SortField string
	// SortAsc is only meaningful when SortField is set.
	SortAsc bool
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsername performs an exact, case-sensitive login-name match.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByIDs loads the users whose id is in ids. Callers must not pass an
	// empty set; membership of the result, not its order, is the contract.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// FindByRoleName returns every user holding the role, matched
	// case-insensitively, unpaged.
	FindByRoleName(ctx context.Context, roleName string) ([]*domain.User, error)
	// FindByRoleNamePaged is the paged variant, ordered by id.
	FindByRoleNamePaged(ctx context.Context, roleName string, skip, limit int64) ([]*domain.User, int64, error)
	List(ctx context.Context, skip, limit int64) ([]*domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// Report returns the page matching filter plus the total pre-pagination count.
	Report(ctx context.Context, filter ReportFilter) ([]*domain.User, int64, error)
}

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	// FindByName matches the role name case-insensitively.
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// FindAll returns every role sorted by name.
	FindAll(ctx context.Context) ([]*domain.Role, error)
}
