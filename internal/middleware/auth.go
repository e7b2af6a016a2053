package middleware

import (
	"net/http"
	"strings"

	"draftdeck/internal/pkg/tokens"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the Authorization bearer token and puts the
// identity into the context under "user_id" and "email".
//
// Invalid and expired tokens are reported the same way; the client's
// recovery for both is a call to /auth/refresh.
func JWTAuth(manager *tokens.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			abortUnauthorized(c, "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			abortUnauthorized(c, "Empty token")
			return
		}

		payload, err := manager.VerifyAccess(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("user_id", payload.UserID)
		c.Set("email", payload.Email)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
