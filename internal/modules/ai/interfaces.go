package ai

import (
	"context"

	"draftdeck/internal/domain"
	"draftdeck/internal/pkg/tokens"
)

// AccessVerifier checks an access token handed over the query string
// on websocket upgrades.
type AccessVerifier interface {
	VerifyAccess(token string) (*tokens.Payload, error)
}

// Message is one conversation turn handed to the text provider.
type Message struct {
	Role    string
	Content string
}

// TextProvider is the generative-text upstream. Implementations carry
// their own endpoint and credentials.
type TextProvider interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Humanizer is the text-rewriting upstream.
type Humanizer interface {
	Humanize(ctx context.Context, text string) (string, error)
}

// DocumentGuard resolves a document only if it belongs to the caller.
// Implemented by the documents service so chat inherits its ownership
// rules.
type DocumentGuard interface {
	Get(ctx context.Context, ownerID, docID int64) (*domain.Document, error)
}

type ChatRepositoryInterface interface {
	Append(ctx context.Context, msg *domain.ChatMessage) error
	History(ctx context.Context, documentID int64, limit int) ([]domain.ChatMessage, error)
	DeleteByDocument(ctx context.Context, documentID int64) error
}
