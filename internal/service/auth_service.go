package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"admin-account/internal/domain"
	"admin-account/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrRateLimited        = errors.New("rate limited")
)

const loginWindow = 10 * time.Minute

// AuthService autentica cuentas administrativas por username y contraseña.
type AuthService struct {
	logger   *zap.Logger
	accounts repository.AccountRepository
	verify   PasswordVerifier
	limiter  LoginRateLimiter
}

func NewAuthService(logger *zap.Logger, accounts repository.AccountRepository, limiter LoginRateLimiter) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = NewLoginRateLimiter(loginWindow, 5)
	}
	return &AuthService{
		logger:   logger,
		accounts: accounts,
		verify:   BcryptVerifier,
		limiter:  limiter,
	}
}

func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.Account, error) {
	if s.accounts == nil {
		return domain.Account{}, errors.New("auth service not configured")
	}

	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return domain.Account{}, ErrInvalidCredentials
	}

	if s.limiter != nil && !s.limiter.Allow(username) {
		return domain.Account{}, ErrRateLimited
	}

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, ErrInvalidCredentials
		}
		return domain.Account{}, err
	}
	if !s.verify(password, account.Password) {
		return domain.Account{}, ErrInvalidCredentials
	}
	if account.Status == domain.AccountDisabled {
		return domain.Account{}, ErrAccountDisabled
	}
	return account, nil
}

// LoginRateLimiter limita la frecuencia de intentos de login por clave.
type LoginRateLimiter interface {
	Allow(key string) bool
}

type loginRateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	hits   map[string][]time.Time
}

// NewLoginRateLimiter crea un rate limiter en memoria.
func NewLoginRateLimiter(window time.Duration, max int) LoginRateLimiter {
	if max <= 0 {
		max = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &loginRateLimiter{
		window: window,
		max:    max,
		hits:   make(map[string][]time.Time),
	}
}

func (l *loginRateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now().UTC()
	cutoff := now.Add(-l.window)
	entries := l.hits[key]
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) >= l.max {
		l.hits[key] = kept
		return false
	}
	kept = append(kept, now)
	l.hits[key] = kept
	return true
}
