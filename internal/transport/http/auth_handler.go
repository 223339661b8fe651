package http

import (
	"errors"
	"net/http"
	"time"

	"shoeshop/internal/service"
	"shoeshop/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth      service.AuthService
	tokens    *token.HSProvider
	accessExp time.Duration
	log       *zap.Logger
}

func NewAuthHandler(auth service.AuthService, tokens *token.HSProvider, accessExp time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, accessExp: accessExp, log: log}
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Login       string    `json:"login"`
	Role        string    `json:"role"`
	Actions     []string  `json:"actions"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	identity, err := h.auth.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid login or password"})
			return
		}
		h.log.Error("authenticate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	signed, exp, err := h.tokens.Sign(c.Request.Context(), identity.Login, identity.Role, h.accessExp)
	if err != nil {
		h.log.Error("token signing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		AccessToken: signed,
		ExpiresAt:   exp,
		Login:       identity.Login,
		Role:        string(identity.Role),
		Actions:     service.RoleActions(identity.Role),
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	profile, err := h.auth.CurrentProfile(c.Request.Context())
	if err != nil {
		h.log.Error("profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"login":     profile.Login,
		"full_name": profile.FullName,
		"role":      string(profile.Role),
		"actions":   service.RoleActions(profile.Role),
	})
}
