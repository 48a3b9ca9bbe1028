package domain

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleHR    = "HR"
	RolePanel = "PANEL"
)

// User models a directory member. PasswordHash holds the bcrypt digest of the
// secret; the plaintext is never stored.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	RoleID       string    `json:"role_id"`
	RoleName     string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role is a named permission class. Role names are compared case-insensitively
// throughout the system. The set of users holding a role is a query-time
// relation (UserRepository.FindByRoleName), never a live back-pointer.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
