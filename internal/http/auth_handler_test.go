package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"admin-account/internal/domain"
	"admin-account/internal/service"
)

func setupAuthRouter(t *testing.T, repo *mockAccountRepo) (*gin.Engine, *service.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtSvc := service.NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, service.NewMemoryRefreshTokenStore())
	authSvc := service.NewAuthService(zap.NewNop(), repo, nil)
	handler := NewAuthHandler(zap.NewNop(), authSvc, jwtSvc)

	r := gin.New()
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/refresh", handler.RefreshToken)
	r.POST("/auth/logout", handler.Logout)
	return r, jwtSvc
}

func seedLoginAccount(t *testing.T, repo *mockAccountRepo, username, password string) domain.Account {
	t.Helper()
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	created, err := repo.Create(context.Background(), domain.Account{
		Username: username,
		Password: string(hashBytes),
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return created
}

func TestAuthHandlerLogin_Success(t *testing.T) {
	repo := newMockAccountRepo()
	seedLoginAccount(t, repo, "alice", "secret-pass")
	r, _ := setupAuthRouter(t, repo)

	rec := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "alice",
		"password": "secret-pass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Tokens service.TokenPair `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", resp.Tokens)
	}
}

func TestAuthHandlerLogin_InvalidCredentials(t *testing.T) {
	repo := newMockAccountRepo()
	seedLoginAccount(t, repo, "alice", "secret-pass")
	r, _ := setupAuthRouter(t, repo)

	rec := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandlerRefreshAndLogout(t *testing.T) {
	repo := newMockAccountRepo()
	account := seedLoginAccount(t, repo, "alice", "secret-pass")
	r, jwtSvc := setupAuthRouter(t, repo)

	pair, err := jwtSvc.GeneratePair(account)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/auth/refresh", gin.H{"refresh_token": pair.RefreshToken})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Tokens service.TokenPair `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rec = doJSON(t, r, http.MethodPost, "/auth/logout", gin.H{"refresh_token": resp.Tokens.RefreshToken})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPost, "/auth/refresh", gin.H{"refresh_token": resp.Tokens.RefreshToken})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}
