package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"admin-account/internal/domain"
	"admin-account/internal/service"
)

// AccountHandler mantiene dependencias para endpoints de cuentas.
type AccountHandler struct {
	logger      *zap.Logger
	accountServ *service.AccountService
}

// NewAccountHandler crea una instancia de AccountHandler con sus dependencias.
func NewAccountHandler(logger *zap.Logger, accountServ *service.AccountService) *AccountHandler {
	return &AccountHandler{
		logger:      logger,
		accountServ: accountServ,
	}
}

// CreateAccount maneja POST /accounts.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req struct {
		Username string                 `json:"username"`
		Email    string                 `json:"email" binding:"omitempty,email"`
		Mobile   string                 `json:"mobile"`
		Status   domain.AccountStatus   `json:"status"`
		Platform domain.AccountPlatform `json:"platform"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create account request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Username != "" && !service.IsValidUsername(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username format"})
		return
	}
	if req.Mobile != "" && !service.IsValidMobile(req.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mobile format"})
		return
	}

	outcome, err := h.accountServ.CreateAccount(c.Request.Context(), service.CreateAccountInput{
		Username: req.Username,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Status:   req.Status,
		Platform: req.Platform,
	})
	if err != nil {
		h.logger.Error("create account failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create account"})
		return
	}
	if !outcome.Accepted {
		c.JSON(http.StatusConflict, gin.H{"message": outcome.Message, "reason": outcome.Reason})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": outcome.Message, "account": outcome.Account})
}

// DeleteAccount maneja DELETE /accounts/:id.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	outcome, err := h.accountServ.DestroyByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("delete account failed", zap.Error(err), zap.Int64("account_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete account"})
		return
	}
	if !outcome.Accepted {
		c.JSON(http.StatusNotFound, gin.H{"message": outcome.Message, "reason": outcome.Reason})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": outcome.Message})
}

// UpdateAccount maneja PUT /accounts/:id.
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req struct {
		Username string                 `json:"username"`
		Email    string                 `json:"email" binding:"omitempty,email"`
		Mobile   string                 `json:"mobile"`
		Status   domain.AccountStatus   `json:"status"`
		Platform domain.AccountPlatform `json:"platform"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update account request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Username != "" && !service.IsValidUsername(req.Username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username format"})
		return
	}
	if req.Mobile != "" && !service.IsValidMobile(req.Mobile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mobile format"})
		return
	}

	outcome, err := h.accountServ.ModifyByID(c.Request.Context(), id, service.UpdateAccountInput{
		Username: req.Username,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Status:   req.Status,
		Platform: req.Platform,
	})
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		h.logger.Error("update account failed", zap.Error(err), zap.Int64("account_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update account"})
		return
	}
	if !outcome.Accepted {
		c.JSON(http.StatusConflict, gin.H{"message": outcome.Message, "reason": outcome.Reason})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": outcome.Message, "account": outcome.Account})
}

// ModifyPassword maneja PATCH /accounts/:id/password.
func (h *AccountHandler) ModifyPassword(c *gin.Context) {
	id, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req struct {
		Password    string `json:"password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid modify password request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	outcome, err := h.accountServ.ModifyPasswordByID(c.Request.Context(), id, req.Password, req.NewPassword)
	if err != nil {
		h.logger.Error("modify password failed", zap.Error(err), zap.Int64("account_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not modify password"})
		return
	}
	if !outcome.Accepted {
		// Contraseña anterior incorrecta: rechazo explícito, no fallo del servidor.
		c.JSON(http.StatusBadRequest, gin.H{"message": outcome.Message, "reason": outcome.Reason})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": outcome.Message})
}

func parseAccountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return 0, false
	}
	return id, true
}
