package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"draftdeck/internal/domain"
	"draftdeck/internal/pkg/tokens"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testTokenManager() *tokens.Manager {
	return tokens.NewManager(tokens.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    time.Hour,
	})
}

func TestJWTAuth_ValidToken(t *testing.T) {
	manager := testTokenManager()
	validToken, _ := manager.MintAccess(tokens.Payload{UserID: 42, Email: "u@x.com"})

	router := gin.New()
	router.Use(JWTAuth(manager))

	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64("user_id"),
			"email":   c.GetString("email"),
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "u@x.com")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(testTokenManager()))

	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("This handler should not be reached")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-here")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RefreshTokenRejectedOnAccessChannel(t *testing.T) {
	manager := testTokenManager()
	refreshToken, _ := manager.MintRefresh(tokens.Payload{UserID: 42, Email: "u@x.com"})

	router := gin.New()
	router.Use(JWTAuth(manager))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("This handler should not be reached")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(testTokenManager()))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("This handler should not be reached")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type stubUserReader struct {
	user *domain.User
}

func (s *stubUserReader) GetByID(_ context.Context, _ int64) (*domain.User, error) {
	return s.user, nil
}

func TestRequireAdmin(t *testing.T) {
	manager := testTokenManager()
	token, _ := manager.MintAccess(tokens.Payload{UserID: 1, Email: "a@x.com"})

	run := func(role domain.UserRole) int {
		router := gin.New()
		router.Use(JWTAuth(manager))
		router.Use(RequireAdmin(&stubUserReader{user: &domain.User{ID: 1, Role: role}}))
		router.GET("/admin", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, run(domain.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, run(domain.RoleUser))
}
