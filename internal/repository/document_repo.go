package repository

import (
	"context"
	"time"

	"draftdeck/internal/domain"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

type documentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	OwnerID   int64     `gorm:"column:owner_id;index;not null"`
	Title     string    `gorm:"column:title"`
	Content   string    `gorm:"column:content"`
	WordCount int       `gorm:"column:word_count"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (documentModel) TableName() string { return "documents" }

func toDomainDocument(m documentModel) *domain.Document {
	return &domain.Document{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Title:     m.Title,
		Content:   m.Content,
		WordCount: m.WordCount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *DocumentRepository) Create(ctx context.Context, d *domain.Document) error {
	m := documentModel{
		OwnerID:   d.OwnerID,
		Title:     d.Title,
		Content:   d.Content,
		WordCount: d.WordCount,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainDocument(m)
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	var m documentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDocument(m), nil
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Document, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&documentModel{}).
		Where("owner_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []documentModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	docs := make([]domain.Document, 0, len(models))
	for _, m := range models {
		docs = append(docs, *toDomainDocument(m))
	}
	return docs, total, nil
}

func (r *DocumentRepository) Update(ctx context.Context, d *domain.Document) error {
	return r.db.WithContext(ctx).Model(&documentModel{}).Where("id = ?", d.ID).Updates(map[string]any{
		"title":      d.Title,
		"content":    d.Content,
		"word_count": d.WordCount,
		"updated_at": time.Now().UTC(),
	}).Error
}

func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&documentModel{}, id).Error
}
