package middleware

import (
	"context"
	"net/http"

	"draftdeck/internal/domain"

	"github.com/gin-gonic/gin"
)

// UserReader is the slice of the user repository the role check needs.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RequireAdmin loads the authenticated user and rejects non-admins.
// Must run after JWTAuth. The token payload deliberately carries no
// role claim, so the check always reflects the current DB state.
func RequireAdmin(users UserReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			abortUnauthorized(c, "Authentication required")
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "Admin access required"},
			})
			return
		}

		c.Set("role", string(user.Role))
		c.Next()
	}
}
