package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/contractgen/internal/model"
)

const principalKey = "principal"

type TokenParser interface {
	Parse(raw string) (model.Principal, error)
}

func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		principal, err := parser.Parse(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireAdmin ставится после Auth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
			return
		}
		if !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}
