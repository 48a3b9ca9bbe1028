package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ibs-platform/user-directory/internal/core/domain"
	"github.com/ibs-platform/user-directory/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository used across the service tests.
type stubUserRepo struct {
	users map[string]*domain.User
	order []string

	findByIDsCalls int
	reportCalls    int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) {
	clone := *u
	r.users[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	clone := cloneUser(user)
	if clone.ID == "" {
		clone.ID = user.Username
	}
	r.add(clone)
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	r.findByIDsCalls++
	found := []*domain.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			found = append(found, cloneUser(u))
		}
	}
	return found, nil
}

func (r *stubUserRepo) FindByRoleName(_ context.Context, roleName string) ([]*domain.User, error) {
	found := []*domain.User{}
	for _, id := range r.order {
		if u := r.users[id]; u != nil && strings.EqualFold(u.RoleName, roleName) {
			found = append(found, cloneUser(u))
		}
	}
	return found, nil
}

func (r *stubUserRepo) FindByRoleNamePaged(ctx context.Context, roleName string, skip, limit int64) ([]*domain.User, int64, error) {
	all, _ := r.FindByRoleName(ctx, roleName)
	return page(all, skip, limit), int64(len(all)), nil
}

func (r *stubUserRepo) List(_ context.Context, skip, limit int64) ([]*domain.User, int64, error) {
	all := []*domain.User{}
	for _, id := range r.order {
		if u := r.users[id]; u != nil {
			all = append(all, cloneUser(u))
		}
	}
	return page(all, skip, limit), int64(len(all)), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Report(ctx context.Context, f ports.ReportFilter) ([]*domain.User, int64, error) {
	r.reportCalls++
	matching := []*domain.User{}
	for _, id := range r.order {
		u := r.users[id]
		if u == nil || !strings.EqualFold(u.RoleName, f.Role) {
			continue
		}
		if !f.StartDate.IsZero() && u.CreatedAt.Before(f.StartDate) {
			continue
		}
		if !f.EndDate.IsZero() && u.CreatedAt.After(f.EndDate) {
			continue
		}
		matching = append(matching, cloneUser(u))
	}

	if f.SortField != "" {
		sort.SliceStable(matching, func(i, j int) bool {
			a, b := matching[i], matching[j]
			if !f.SortAsc {
				a, b = b, a
			}
			switch f.SortField {
			case "fullName":
				return a.FullName < b.FullName
			case "createdAt":
				return a.CreatedAt.Before(b.CreatedAt)
			default:
				return a.ID < b.ID
			}
		})
	}

	return page(matching, f.Skip, f.Limit), int64(len(matching)), nil
}

func page(all []*domain.User, skip, limit int64) []*domain.User {
	if skip >= int64(len(all)) {
		return []*domain.User{}
	}
	end := skip + limit
	if limit <= 0 || end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end]
}

// stubRoleRepo is an in-memory ports.RoleRepository.
type stubRoleRepo struct {
	roles []*domain.Role
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.ID == id {
			return role, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if strings.EqualFold(role.Name, name) {
			return role, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindAll(_ context.Context) ([]*domain.Role, error) {
	return r.roles, nil
}

// stubScheduler returns canned slot assignments or a fixed error.
type stubScheduler struct {
	slots []domain.SlotAssignment
	err   error

	betweenCalls int
	allCalls     int
	lastStart    time.Time
	lastEnd      time.Time
}

func (s *stubScheduler) GetSlotsBetween(_ context.Context, start, end time.Time) ([]domain.SlotAssignment, error) {
	s.betweenCalls++
	s.lastStart, s.lastEnd = start, end
	return s.slots, s.err
}

func (s *stubScheduler) GetAllSlots(_ context.Context) ([]domain.SlotAssignment, error) {
	s.allCalls++
	return s.slots, s.err
}

// stubThrottle implements ports.LoginThrottle with canned behaviour.
type stubThrottle struct {
	blocked  bool
	err      error
	failures []string
	resets   []string
}

func (t *stubThrottle) Blocked(_ context.Context, _ string) (bool, error) {
	return t.blocked, t.err
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures = append(t.failures, username)
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	t.resets = append(t.resets, username)
	return nil
}

// stubAuditSink records enqueued audit events.
type stubAuditSink struct {
	events []ports.AuditEventInput
}

func (s *stubAuditSink) Enqueue(event ports.AuditEventInput) {
	s.events = append(s.events, event)
}

func strptr(s string) *string { return &s }
