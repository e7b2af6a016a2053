package ai

import "draftdeck/internal/domain"

type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type HumanizeRequest struct {
	Text string `json:"text" binding:"required"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatHistoryResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}
