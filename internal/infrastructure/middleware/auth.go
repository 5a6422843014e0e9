package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/httputil"
)

const (
	SubjectKey   = httputil.SubjectKey
	BearerPrefix = "Bearer "
)

type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

// NewAuthMiddleware returns a middleware that lets every request through when validator is nil.
func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.validator == nil {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "authorization header required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization format")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, BearerPrefix)
		subject, err := m.validator.ValidateToken(token)
		if err != nil {
			httputil.ErrorWithCode(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}
