package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"admin-account/internal/domain"
)

func seedAccountWithPassword(t *testing.T, repo *mockAccountRepo, username, password string, status domain.AccountStatus) domain.Account {
	t.Helper()
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	created, err := repo.Create(context.Background(), domain.Account{
		Username: username,
		Password: string(hashBytes),
		Status:   status,
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return created
}

func TestAuthServiceAuthenticate_Success(t *testing.T) {
	repo := newMockAccountRepo()
	created := seedAccountWithPassword(t, repo, "alice", "secret-pass", domain.AccountEnabled)
	svc := NewAuthService(zap.NewNop(), repo, nil)

	account, err := svc.Authenticate(context.Background(), " alice ", "secret-pass")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if account.ID != created.ID {
		t.Fatalf("expected account %d, got %d", created.ID, account.ID)
	}
}

func TestAuthServiceAuthenticate_WrongPassword(t *testing.T) {
	repo := newMockAccountRepo()
	seedAccountWithPassword(t, repo, "alice", "secret-pass", domain.AccountEnabled)
	svc := NewAuthService(zap.NewNop(), repo, nil)

	_, err := svc.Authenticate(context.Background(), "alice", "nope")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthServiceAuthenticate_UnknownAccount(t *testing.T) {
	repo := newMockAccountRepo()
	svc := NewAuthService(zap.NewNop(), repo, nil)

	_, err := svc.Authenticate(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthServiceAuthenticate_DisabledAccount(t *testing.T) {
	repo := newMockAccountRepo()
	seedAccountWithPassword(t, repo, "alice", "secret-pass", domain.AccountDisabled)
	svc := NewAuthService(zap.NewNop(), repo, nil)

	_, err := svc.Authenticate(context.Background(), "alice", "secret-pass")
	if !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

type mockLimiter struct {
	allow bool
}

func (m *mockLimiter) Allow(_ string) bool {
	return m.allow
}

func TestAuthServiceAuthenticate_RateLimited(t *testing.T) {
	repo := newMockAccountRepo()
	seedAccountWithPassword(t, repo, "alice", "secret-pass", domain.AccountEnabled)
	svc := NewAuthService(zap.NewNop(), repo, &mockLimiter{allow: false})

	_, err := svc.Authenticate(context.Background(), "alice", "secret-pass")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestLoginRateLimiter_Window(t *testing.T) {
	limiter := NewLoginRateLimiter(loginWindow, 2)
	if !limiter.Allow("alice") || !limiter.Allow("alice") {
		t.Fatalf("expected first attempts allowed")
	}
	if limiter.Allow("alice") {
		t.Fatalf("expected third attempt denied")
	}
	if !limiter.Allow("bob") {
		t.Fatalf("expected independent key allowed")
	}
}
