package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ibs-platform/user-directory/internal/core/domain"
	"github.com/ibs-platform/user-directory/internal/core/ports"
)

const defaultPageSize = 10

// UserService implements directory member CRUD. Every mutation emits an audit
// event through the sink; auditing is best-effort and never fails the call.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository, audit ports.AuditSink, log zerolog.Logger) *UserService {
	return &UserService{users: users, roles: roles, audit: audit, log: log}
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	role, err := s.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Active:       in.Active,
		RoleID:       role.ID,
		RoleName:     role.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.RoleName).Msg("user created")
	s.recordAudit(created.ID, "create")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	role, err := s.roles.FindByID(ctx, in.RoleID)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	user.Username = in.Username
	user.FullName = in.FullName
	user.Email = in.Email
	user.Phone = in.Phone
	user.Active = in.Active
	user.RoleID = role.ID
	user.RoleName = role.Name
	user.UpdatedAt = time.Now().UTC()

	// Only re-hash when the caller supplied a replacement secret.
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.recordAudit(updated.ID, "update")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Str("user_id", id).Msg("user deleted")
	s.recordAudit(id, "delete")
	return nil
}

func (s *UserService) List(ctx context.Context, page, size int) (*ports.UserPage, error) {
	page, size = normalizePage(page, size)
	users, total, err := s.users.List(ctx, int64(page-1)*int64(size), int64(size))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &ports.UserPage{Items: users, Total: total, Page: page, Size: size}, nil
}

func (s *UserService) ByRole(ctx context.Context, roleName string, page, size int) (*ports.UserPage, error) {
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, fmt.Errorf("users by role: %w", err)
	}

	page, size = normalizePage(page, size)
	users, total, err := s.users.FindByRoleNamePaged(ctx, role.Name, int64(page-1)*int64(size), int64(size))
	if err != nil {
		return nil, fmt.Errorf("users by role: %w", err)
	}
	return &ports.UserPage{Items: users, Total: total, Page: page, Size: size}, nil
}

func (s *UserService) recordAudit(userID, action string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		UserID:    userID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	return page, size
}
