package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ibs-platform/user-directory/internal/core/domain"
)

func seedUser(t *testing.T, repo *stubUserRepo, id, username, password, role string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo.add(&domain.User{
		ID:           id,
		Username:     username,
		FullName:     username,
		PasswordHash: string(hash),
		Active:       active,
		RoleName:     role,
	})
}

func newAuthService(repo *stubUserRepo, throttle *stubThrottle) *AuthService {
	log := zerolog.Nop()
	resolver := NewPrincipalResolver(repo, log)
	signer := NewTokenSigner(testSecret, time.Hour)
	if throttle == nil {
		return NewAuthService(resolver, signer, nil, log)
	}
	return NewAuthService(resolver, signer, throttle, log)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "carol", "s3cret", domain.RoleAdmin, true)
	svc := newAuthService(repo, nil)

	result, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if result.Role != domain.RoleAdmin {
		t.Fatalf("expected role ADMIN, got %q", result.Role)
	}
	if result.UserID != "u1" || result.Username != "carol" {
		t.Fatalf("unexpected identity: %+v", result)
	}

	signer := NewTokenSigner(testSecret, time.Hour)
	if !signer.Verify(result.Token) {
		t.Fatalf("issued token does not verify")
	}
	subject, err := signer.SubjectOf(result.Token)
	if err != nil || subject != "carol" {
		t.Fatalf("expected subject carol, got %q (%v)", subject, err)
	}
}

func TestAuthService_Login_RoleIsFirstAuthority(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "dave", "pass12", domain.RoleHR, true)
	svc := newAuthService(repo, nil)

	result, err := svc.Login(context.Background(), "dave", "pass12")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Role != domain.RoleHR {
		t.Fatalf("expected first authority HR, got %q", result.Role)
	}
}

// Wrong password and unknown login name must be indistinguishable.
func TestAuthService_Login_NonEnumerable(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "erin", "goodpass", domain.RolePanel, true)
	svc := newAuthService(repo, nil)

	_, wrongPass := svc.Login(context.Background(), "erin", "badpass")
	_, unknown := svc.Login(context.Background(), "ghost", "whatever")

	if !errors.Is(wrongPass, domain.ErrAuthentication) {
		t.Fatalf("wrong password: expected ErrAuthentication, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrAuthentication) {
		t.Fatalf("unknown user: expected ErrAuthentication, got %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPass, unknown)
	}
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "frank", "goodpass", domain.RolePanel, false)
	svc := newAuthService(repo, nil)

	if _, err := svc.Login(context.Background(), "frank", "goodpass"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication for disabled account, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "user", ""); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "grace", "goodpass", domain.RoleAdmin, true)
	throttle := &stubThrottle{blocked: true}
	svc := newAuthService(repo, throttle)

	// Correct credentials, but the account is over the failure budget.
	if _, err := svc.Login(context.Background(), "grace", "goodpass"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication while throttled, got %v", err)
	}
}

func TestAuthService_Login_ThrottleFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "heidi", "goodpass", domain.RoleAdmin, true)
	throttle := &stubThrottle{err: errors.New("redis down")}
	svc := newAuthService(repo, throttle)

	if _, err := svc.Login(context.Background(), "heidi", "goodpass"); err != nil {
		t.Fatalf("expected login to succeed when throttle store is down, got %v", err)
	}
}

func TestAuthService_Login_RecordsFailureAndReset(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "u1", "ivan", "goodpass", domain.RoleAdmin, true)
	throttle := &stubThrottle{}
	svc := newAuthService(repo, throttle)

	_, _ = svc.Login(context.Background(), "ivan", "badpass")
	if len(throttle.failures) != 1 || throttle.failures[0] != "ivan" {
		t.Fatalf("expected one recorded failure for ivan, got %v", throttle.failures)
	}

	if _, err := svc.Login(context.Background(), "ivan", "goodpass"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if len(throttle.resets) != 1 || throttle.resets[0] != "ivan" {
		t.Fatalf("expected counter reset for ivan, got %v", throttle.resets)
	}
}
