package ai

import (
	"context"
	"strings"

	"draftdeck/internal/domain"
)

const (
	maxPromptLen     = 8000
	chatHistoryLimit = 50
)

// Service is a thin proxy: validate, assemble context, call upstream,
// persist chat turns. No generation logic lives here.
type Service struct {
	provider  TextProvider
	humanizer Humanizer
	docs      DocumentGuard
	chat      ChatRepositoryInterface
}

func NewService(provider TextProvider, humanizer Humanizer, docs DocumentGuard, chat ChatRepositoryInterface) *Service {
	return &Service{
		provider:  provider,
		humanizer: humanizer,
		docs:      docs,
		chat:      chat,
	}
}

func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	if err := validatePrompt(prompt); err != nil {
		return "", err
	}
	return s.provider.Generate(ctx, []Message{{Role: "user", Content: prompt}})
}

func (s *Service) Humanize(ctx context.Context, text string) (string, error) {
	if err := validatePrompt(text); err != nil {
		return "", err
	}
	return s.humanizer.Humanize(ctx, text)
}

// SendChatMessage appends the user's turn to the document conversation,
// replays the history to the provider, and persists the reply. The
// user's turn is only persisted after the provider answers, so a failed
// upstream call leaves history unchanged.
func (s *Service) SendChatMessage(ctx context.Context, ownerID, docID int64, prompt string) (*domain.ChatMessage, error) {
	if err := validatePrompt(prompt); err != nil {
		return nil, err
	}

	if _, err := s.docs.Get(ctx, ownerID, docID); err != nil {
		return nil, err
	}

	history, err := s.chat.History(ctx, docID, chatHistoryLimit)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, Message{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, Message{Role: "user", Content: prompt})

	replyText, err := s.provider.Generate(ctx, messages)
	if err != nil {
		return nil, err
	}

	userTurn := &domain.ChatMessage{
		DocumentID: docID,
		Role:       domain.ChatRoleUser,
		Content:    prompt,
	}
	if err := s.chat.Append(ctx, userTurn); err != nil {
		return nil, err
	}

	reply := &domain.ChatMessage{
		DocumentID: docID,
		Role:       domain.ChatRoleAssistant,
		Content:    replyText,
	}
	if err := s.chat.Append(ctx, reply); err != nil {
		return nil, err
	}

	return reply, nil
}

func (s *Service) ChatHistory(ctx context.Context, ownerID, docID int64) ([]domain.ChatMessage, error) {
	if _, err := s.docs.Get(ctx, ownerID, docID); err != nil {
		return nil, err
	}
	return s.chat.History(ctx, docID, chatHistoryLimit)
}

func (s *Service) ClearChatHistory(ctx context.Context, ownerID, docID int64) error {
	if _, err := s.docs.Get(ctx, ownerID, docID); err != nil {
		return err
	}
	return s.chat.DeleteByDocument(ctx, docID)
}

func validatePrompt(prompt string) error {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return ErrEmptyPrompt
	}
	if len(prompt) > maxPromptLen {
		return ErrPromptTooLong
	}
	return nil
}
