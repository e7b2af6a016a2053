package documents

import (
	"context"

	"draftdeck/internal/domain"
)

// DocumentRepositoryInterface — only the methods the service uses.
type DocumentRepositoryInterface interface {
	Create(ctx context.Context, d *domain.Document) error
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Document, int64, error)
	Update(ctx context.Context, d *domain.Document) error
	Delete(ctx context.Context, id int64) error
}

// ChatHistoryCleaner removes assistant history when a document goes away.
type ChatHistoryCleaner interface {
	DeleteByDocument(ctx context.Context, documentID int64) error
}
