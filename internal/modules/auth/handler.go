package auth

import (
	"errors"
	"net/http"
	"time"

	"draftdeck/internal/config"
	"draftdeck/internal/pkg/response"
	"draftdeck/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const refreshCookieName = "refresh_token"

// Handler manages all HTTP interactions for authentication.
type Handler struct {
	service *Service
	google  GoogleVerifier
	cfg     *config.Config
}

func NewHandler(service *Service, google GoogleVerifier, cfg *config.Config) *Handler {
	return &Handler{
		service: service,
		google:  google,
		cfg:     cfg,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/google", h.GoogleRedirect)
		authGroup.GET("/google/callback", h.GoogleCallback)
		authGroup.POST("/password/forgot", h.ForgotPassword)
		authGroup.POST("/password/reset", h.ResetPassword)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PUT("/me", h.UpdateProfile)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register")
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.Success(c, http.StatusCreated, gin.H{
		"user":  toUserPublic(result),
		"token": result.AccessToken,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"user":  toUserPublic(result),
		"token": result.AccessToken,
	})
}

// Refresh exchanges the cookie-borne refresh token for a new pair.
// The new refresh token replaces the cookie; the access token goes in
// the body only.
func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing refresh token")
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			h.clearRefreshCookie(c)
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired refresh token")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"user":  toUserPublic(result),
		"token": result.AccessToken,
	})
}

// Logout clears the cookie. There is no server-side session to tear
// down; the superseded refresh token dies at its natural expiry.
func (h *Handler) Logout(c *gin.Context) {
	h.clearRefreshCookie(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) GoogleRedirect(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("oauth_state", state, int((10 * time.Minute).Seconds()), h.cfg.CookiePath, "", h.cfg.CookieSecure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthURL(state))
}

func (h *Handler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	expected, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != expected {
		response.Error(c, http.StatusBadRequest, "OAUTH_STATE_MISMATCH", "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		response.Error(c, http.StatusBadRequest, "OAUTH_CODE_MISSING", "Missing authorization code")
		return
	}

	identity, err := h.google.Verify(c.Request.Context(), code)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "OAUTH_FAILED", "Google sign-in failed")
		return
	}

	result, err := h.service.LoginWithGoogle(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "OAUTH_FAILED", "Failed to sign in with Google")
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{
		"user":  toUserPublic(result),
		"token": result.AccessToken,
	})
}

// ForgotPassword always answers accepted; whether the email exists is
// not observable from the outside.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.Error(c, http.StatusInternalServerError, "RESET_REQUEST_FAILED", "Failed to process reset request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "accepted"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password must be at least 6 characters")
		return
	}

	err := h.service.ResetPassword(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		if errors.Is(err, ErrResetTokenInvalid) || errors.Is(err, ErrResetTokenExpired) {
			response.Error(c, http.StatusBadRequest, "RESET_TOKEN_INVALID", "Reset link is invalid or expired, request a new one")
			return
		}
		response.Error(c, http.StatusInternalServerError, "RESET_FAILED", "Failed to reset password")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": UserPublic{
			ID:         user.ID,
			Email:      user.Email,
			Name:       user.Name,
			Role:       string(user.Role),
			BetaStatus: string(user.BetaStatus),
			BetaAccess: user.HasBetaAccess(),
		},
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid fields", errors)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update profile")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// The refresh token travels only in this http-only cookie, never in a
// response body. MaxAge matches the token's own TTL.
func (h *Handler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(sameSiteMode(h.cfg.CookieSameSite))
	c.SetCookie(refreshCookieName, token, int(h.cfg.RefreshTTL.Seconds()), h.cfg.CookiePath, "", h.cfg.CookieSecure, true)
}

func (h *Handler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(sameSiteMode(h.cfg.CookieSameSite))
	c.SetCookie(refreshCookieName, "", -1, h.cfg.CookiePath, "", h.cfg.CookieSecure, true)
}

func sameSiteMode(v string) http.SameSite {
	switch {
	case v == "None" || v == "none":
		return http.SameSiteNoneMode
	case v == "Lax" || v == "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteStrictMode
	}
}

func toUserPublic(r *LoginResult) UserPublic {
	return UserPublic{
		ID:         r.User.ID,
		Email:      r.User.Email,
		Name:       r.User.Name,
		Role:       string(r.User.Role),
		BetaStatus: string(r.User.BetaStatus),
		BetaAccess: r.User.HasBetaAccess(),
	}
}
