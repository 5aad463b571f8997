package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sheharfix-be/models"
	authUtils "sheharfix-be/utils"
)

const identityKey = "identity"

func bearerToken(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return authHeader[7:]
}

// IdentityFrom returns the authenticated identity, or nil for anonymous
// requests.
func IdentityFrom(c *gin.Context) *authUtils.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*authUtils.Identity)
	if !ok {
		return nil
	}
	return identity
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}

		identity, err := authUtils.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attributes the request when a valid bearer token is present.
// A missing or invalid token is treated as anonymous, not as a failure.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if identity, err := authUtils.ParseToken(tokenString); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// RequireRole composes with RequireAuth and rejects identities whose role
// does not match.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFrom(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}
		if identity.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
