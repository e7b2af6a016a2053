package waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"draftdeck/internal/pkg/response"
	"draftdeck/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/waitlist", h.Join)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	wl := admin.Group("/waitlist")
	{
		wl.GET("", h.List)
		wl.POST("/:id/approve", h.Approve)
		wl.POST("/:id/reject", h.Reject)
	}
}

func (h *Handler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid fields", errors)
		return
	}

	entry, err := h.service.Join(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "JOIN_FAILED", "Failed to join waitlist")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"entry": entry})
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := c.Query("status")

	entries, total, err := h.service.List(c.Request.Context(), status, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list waitlist")
		return
	}

	response.Success(c, http.StatusOK, ListResponse{
		Entries: entries,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

func (h *Handler) Approve(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid entry ID")
		return
	}

	entry, err := h.service.Approve(c.Request.Context(), entryID, c.GetInt64("user_id"))
	if err != nil {
		h.reviewError(c, err, "APPROVE_FAILED", "Failed to approve entry")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

func (h *Handler) Reject(c *gin.Context) {
	entryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid entry ID")
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
		return
	}

	entry, err := h.service.Reject(c.Request.Context(), entryID, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		h.reviewError(c, err, "REJECT_FAILED", "Failed to reject entry")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

func (h *Handler) reviewError(c *gin.Context, err error, code, message string) {
	switch {
	case errors.Is(err, ErrEntryNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Waitlist entry not found")
	case errors.Is(err, ErrAlreadyReviewed):
		response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "Entry was already reviewed")
	case errors.Is(err, ErrReasonRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rejection reason is required")
	default:
		response.Error(c, http.StatusInternalServerError, code, message)
	}
}
