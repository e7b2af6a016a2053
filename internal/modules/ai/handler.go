package ai

import (
	"errors"
	"net/http"
	"strconv"

	"draftdeck/internal/modules/documents"
	"draftdeck/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  *Service
	verifier AccessVerifier
}

func NewHandler(service *Service, verifier AccessVerifier) *Handler {
	return &Handler{service: service, verifier: verifier}
}

// RegisterRoutes wires the REST surface onto the authenticated group.
// The websocket endpoint goes on the public group because browsers
// cannot attach an Authorization header to an upgrade request; it does
// its own token check from the query string.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	aiGroup := protected.Group("/ai")
	{
		aiGroup.POST("/generate", h.Generate)
		aiGroup.POST("/humanize", h.Humanize)
	}

	chatGroup := protected.Group("/documents/:id/chat")
	{
		chatGroup.POST("", h.SendChatMessage)
		chatGroup.GET("", h.ChatHistory)
		chatGroup.DELETE("", h.ClearChatHistory)
	}

	public.GET("/documents/:id/chat/ws", h.ChatSocket)
}

func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Prompt is required")
		return
	}

	text, err := h.service.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		h.aiError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"text": text})
}

func (h *Handler) Humanize(c *gin.Context) {
	var req HumanizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Text is required")
		return
	}

	text, err := h.service.Humanize(c.Request.Context(), req.Text)
	if err != nil {
		h.aiError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"text": text})
}

func (h *Handler) SendChatMessage(c *gin.Context) {
	docID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is required")
		return
	}

	reply, err := h.service.SendChatMessage(c.Request.Context(), c.GetInt64("user_id"), docID, req.Message)
	if err != nil {
		h.aiError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reply": reply})
}

func (h *Handler) ChatHistory(c *gin.Context) {
	docID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return
	}

	messages, err := h.service.ChatHistory(c.Request.Context(), c.GetInt64("user_id"), docID)
	if err != nil {
		h.aiError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ChatHistoryResponse{Messages: messages})
}

func (h *Handler) ClearChatHistory(c *gin.Context) {
	docID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return
	}

	if err := h.service.ClearChatHistory(c.Request.Context(), c.GetInt64("user_id"), docID); err != nil {
		h.aiError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Chat history cleared"})
}

func (h *Handler) aiError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyPrompt):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Prompt is empty")
	case errors.Is(err, ErrPromptTooLong):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Prompt too long")
	case errors.Is(err, documents.ErrDocumentNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
	case errors.Is(err, ErrUpstream):
		response.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", "Text provider is unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "AI_FAILED", "Request failed")
	}
}
