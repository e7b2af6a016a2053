package documents

import (
	"errors"
	"net/http"
	"strconv"

	"draftdeck/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	docs := protected.Group("/documents")
	{
		docs.POST("", h.Create)
		docs.GET("", h.List)
		docs.GET("/:id", h.Get)
		docs.PUT("/:id", h.Update)
		docs.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	doc, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create document")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"document": doc})
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	docs, total, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list documents")
		return
	}

	response.Success(c, http.StatusOK, DocumentListResponse{
		Documents: docs,
		Total:     total,
		Page:      page,
		Limit:     limit,
	})
}

func (h *Handler) Get(c *gin.Context) {
	docID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return
	}

	doc, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), docID)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "GET_FAILED", "Failed to load document")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"document": doc})
}

func (h *Handler) Update(c *gin.Context) {
	docID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	doc, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), docID, req)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update document")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"document": doc})
}

func (h *Handler) Delete(c *gin.Context) {
	docID, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), docID); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete document")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Document deleted"})
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
