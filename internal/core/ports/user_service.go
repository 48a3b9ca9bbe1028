package ports

import (
	"context"
	"time"

	"github.com/ibs-platform/user-directory/internal/core/domain"
)

// CreateUserInput carries all data needed to create a directory member.
type CreateUserInput struct {
	Username string
	FullName string
	Email    string
	Phone    string
	Password string
	Active   bool
	RoleID   string
}

// UpdateUserInput mirrors CreateUserInput; an empty Password leaves the stored
// hash untouched.
type UpdateUserInput struct {
	Username string
	FullName string
	Email    string
	Phone    string
	Password string
	Active   bool
	RoleID   string
}

// UserPage is a page of users plus the total pre-pagination count.
type UserPage struct {
	Items []*domain.User
	Total int64
	Page  int
	Size  int
}

// UserService defines the directory CRUD use cases.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page, size int) (*UserPage, error)
	ByRole(ctx context.Context, role string, page, size int) (*UserPage, error)
}

// PanelService reconciles the local panelist pool against scheduler data.
type PanelService interface {
	AvailablePanelists(ctx context.Context, start, end time.Time) ([]*domain.User, error)
	PendingPanelists(ctx context.Context) ([]*domain.User, error)
}

// RoleService lists the known roles.
type RoleService interface {
	List(ctx context.Context) ([]*domain.Role, error)
}

// ReportInput carries the report query as received at the API boundary.
// Page is 1-based here and converted internally.
type ReportInput struct {
	Role      string
	StartDate time.Time
	EndDate   time.Time
	Page      int
	Size      int
	SortField string
	SortDir   string
}

// ReportRow is the fixed per-user projection; it never carries the password hash.
type ReportRow struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReportResult is a page of report rows plus the total matching count, so
// callers can compute page counts without a second query.
type ReportResult struct {
	Rows  []ReportRow
	Page  int
	Size  int
	Total int64
}

// ReportService assembles the paginated, sortable, date-filtered user report.
type ReportService interface {
	Report(ctx context.Context, in ReportInput) (*ReportResult, error)
}
