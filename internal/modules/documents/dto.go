package documents

import "draftdeck/internal/domain"

type CreateDocumentRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content"`
}

type UpdateDocumentRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type DocumentListResponse struct {
	Documents []domain.Document `json:"documents"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
}
