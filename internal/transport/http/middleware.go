package http

import (
	"net/http"
	"strings"

	"shoeshop/internal/service"
	"shoeshop/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxLogin = "login"
	CtxRole  = "role"
)

// AuthRequired проверяет Bearer-токен и кладёт логин/роль и в gin-контекст,
// и в context.Context запроса — сервисный слой читает только последний.
func AuthRequired(tokens *token.HSProvider, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		t, ok := extractBearerToken(authz)
		if !ok || t == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		claims, err := tokens.ParseAndValidate(c.Request.Context(), t)
		if err != nil {
			log.Warn("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(CtxLogin, claims.Login)
		c.Set(CtxRole, claims.Role)
		c.Request = c.Request.WithContext(
			service.WithCurrentUser(c.Request.Context(), claims.Login, claims.Role))
		c.Next()
	}
}

// StaffOnly пропускает только администратора и менеджера.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := service.CurrentRole(c.Request.Context())
		if !ok || !service.IsStaff(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func extractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}
