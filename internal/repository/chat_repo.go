package repository

import (
	"context"
	"time"

	"draftdeck/internal/domain"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

type chatMessageModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	DocumentID int64     `gorm:"column:document_id;index;not null"`
	Role       string    `gorm:"column:role;not null"`
	Content    string    `gorm:"column:content"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (chatMessageModel) TableName() string { return "chat_messages" }

func toDomainChatMessage(m chatMessageModel) *domain.ChatMessage {
	return &domain.ChatMessage{
		ID:         m.ID,
		DocumentID: m.DocumentID,
		Role:       domain.ChatRole(m.Role),
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *ChatRepository) Append(ctx context.Context, msg *domain.ChatMessage) error {
	m := chatMessageModel{
		DocumentID: msg.DocumentID,
		Role:       string(msg.Role),
		Content:    msg.Content,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*msg = *toDomainChatMessage(m)
	return nil
}

func (r *ChatRepository) History(ctx context.Context, documentID int64, limit int) ([]domain.ChatMessage, error) {
	var models []chatMessageModel
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("created_at ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	msgs := make([]domain.ChatMessage, 0, len(models))
	for _, m := range models {
		msgs = append(msgs, *toDomainChatMessage(m))
	}
	return msgs, nil
}

func (r *ChatRepository) DeleteByDocument(ctx context.Context, documentID int64) error {
	return r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Delete(&chatMessageModel{}).Error
}

// DeleteOrphaned drops history whose document no longer exists.
// Called from the cleanup job.
func (r *ChatRepository) DeleteOrphaned(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM chat_messages
		WHERE document_id NOT IN (SELECT id FROM documents)
	`).Error
}
