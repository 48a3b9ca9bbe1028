package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ibs-platform/user-directory/internal/core/domain"
	"github.com/ibs-platform/user-directory/internal/core/ports"
)

func newUserService(users *stubUserRepo, roles *stubRoleRepo, audit ports.AuditSink) *UserService {
	return NewUserService(users, roles, audit, zerolog.Nop())
}

func hrRoles() *stubRoleRepo {
	return &stubRoleRepo{roles: []*domain.Role{
		{ID: "r1", Name: domain.RoleAdmin},
		{ID: "r2", Name: domain.RoleHR},
		{ID: "r3", Name: domain.RolePanel},
	}}
}

func TestUserService_Create(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAuditSink{}
	svc := newUserService(repo, hrRoles(), audit)

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		FullName: "Alice A",
		Email:    "alice@example.com",
		Phone:    "9876543210",
		Password: "pass123",
		Active:   true,
		RoleID:   "r3",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.RoleName != domain.RolePanel {
		t.Fatalf("expected role PANEL, got %q", user.RoleName)
	}
	if len(audit.events) != 1 || audit.events[0].Action != "create" {
		t.Fatalf("expected one create audit event, got %v", audit.events)
	}
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	svc := newUserService(newStubUserRepo(), hrRoles(), nil)

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "bob", Password: "pass123", RoleID: "missing",
	})
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, hrRoles(), nil)

	in := ports.CreateUserInput{Username: "bob", Password: "pass123", RoleID: "r1"}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_KeepsHashWhenPasswordBlank(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAuditSink{}
	svc := newUserService(repo, hrRoles(), audit)

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "carol", Password: "original", RoleID: "r2", Active: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{
		Username: "carol", FullName: "Carol C", RoleID: "r1", Active: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.PasswordHash != created.PasswordHash {
		t.Fatalf("blank password must keep the stored hash")
	}
	if updated.RoleName != domain.RoleAdmin {
		t.Fatalf("expected role change to ADMIN, got %q", updated.RoleName)
	}
}

func TestUserService_Update_RehashesNewPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, hrRoles(), nil)

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "dave", Password: "original", RoleID: "r1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateUserInput{
		Username: "dave", Password: "replacement", RoleID: "r1",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("replacement")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
}

func TestUserService_Delete_Missing(t *testing.T) {
	svc := newUserService(newStubUserRepo(), hrRoles(), nil)

	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ByRole_UnknownRole(t *testing.T) {
	svc := newUserService(newStubUserRepo(), hrRoles(), nil)

	if _, err := svc.ByRole(context.Background(), "WIZARD", 1, 10); !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}

func TestUserService_List_Paged(t *testing.T) {
	repo := newStubUserRepo()
	svc := newUserService(repo, hrRoles(), nil)
	for _, name := range []string{"u1", "u2", "u3"} {
		if _, err := svc.Create(context.Background(), ports.CreateUserInput{
			Username: name, Password: "pass123", RoleID: "r1",
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	result, err := svc.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 3 || len(result.Items) != 1 {
		t.Fatalf("expected total 3 with 1 item on page 2, got total=%d items=%d", result.Total, len(result.Items))
	}
}
