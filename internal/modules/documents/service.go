package documents

import (
	"context"
	"errors"
	"strings"

	"draftdeck/internal/domain"

	"gorm.io/gorm"
)

// Service handles document business logic. Ownership is enforced here,
// not in handlers, so every caller (HTTP, websocket chat) gets the same
// checks.
type Service struct {
	docs DocumentRepositoryInterface
	chat ChatHistoryCleaner
}

func NewService(docs DocumentRepositoryInterface, chat ChatHistoryCleaner) *Service {
	return &Service{docs: docs, chat: chat}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateDocumentRequest) (*domain.Document, error) {
	doc := &domain.Document{
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		WordCount: countWords(req.Content),
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) List(ctx context.Context, ownerID int64, page, limit int) ([]domain.Document, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.docs.ListByOwner(ctx, ownerID, limit, (page-1)*limit)
}

// Get returns the document if it exists and belongs to the caller.
// Someone else's document reads as not found, not forbidden.
func (s *Service) Get(ctx context.Context, ownerID, docID int64) (*domain.Document, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if doc.OwnerID != ownerID {
		return nil, ErrDocumentNotFound
	}
	return doc, nil
}

func (s *Service) Update(ctx context.Context, ownerID, docID int64, req UpdateDocumentRequest) (*domain.Document, error) {
	doc, err := s.Get(ctx, ownerID, docID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		doc.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		doc.Content = *req.Content
		doc.WordCount = countWords(*req.Content)
	}

	if err := s.docs.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, docID int64) error {
	if _, err := s.Get(ctx, ownerID, docID); err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, docID); err != nil {
		return err
	}
	if s.chat != nil {
		_ = s.chat.DeleteByDocument(ctx, docID)
	}
	return nil
}

func countWords(content string) int {
	return len(strings.Fields(content))
}
