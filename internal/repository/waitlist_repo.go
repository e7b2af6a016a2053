package repository

import (
	"context"
	"strings"
	"time"

	"draftdeck/internal/domain"

	"gorm.io/gorm"
)

type WaitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

type waitlistModel struct {
	ID             int64      `gorm:"column:id;primaryKey"`
	Email          string     `gorm:"column:email;uniqueIndex;not null"`
	Name           string     `gorm:"column:name"`
	Status         string     `gorm:"column:status;index"`
	RejectedReason *string    `gorm:"column:rejected_reason"`
	ReviewedBy     *int64     `gorm:"column:reviewed_by"`
	ReviewedAt     *time.Time `gorm:"column:reviewed_at"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
}

func (waitlistModel) TableName() string { return "waitlist_entries" }

func toDomainWaitlistEntry(m waitlistModel) *domain.WaitlistEntry {
	var reason string
	if m.RejectedReason != nil {
		reason = *m.RejectedReason
	}
	return &domain.WaitlistEntry{
		ID:             m.ID,
		Email:          m.Email,
		Name:           m.Name,
		Status:         domain.WaitlistStatus(m.Status),
		RejectedReason: reason,
		ReviewedBy:     m.ReviewedBy,
		ReviewedAt:     m.ReviewedAt,
		CreatedAt:      m.CreatedAt,
	}
}

func (r *WaitlistRepository) Create(ctx context.Context, e *domain.WaitlistEntry) error {
	m := waitlistModel{
		Email:  strings.ToLower(strings.TrimSpace(e.Email)),
		Name:   e.Name,
		Status: string(e.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = *toDomainWaitlistEntry(m)
	return nil
}

func (r *WaitlistRepository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	var m waitlistModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainWaitlistEntry(m), nil
}

func (r *WaitlistRepository) GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error) {
	var m waitlistModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainWaitlistEntry(m), nil
}

func (r *WaitlistRepository) List(ctx context.Context, status string, limit, offset int) ([]domain.WaitlistEntry, int64, error) {
	q := r.db.WithContext(ctx).Model(&waitlistModel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []waitlistModel
	if err := q.Order("created_at ASC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]domain.WaitlistEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, *toDomainWaitlistEntry(m))
	}
	return entries, total, nil
}

// SetStatus records the review decision; reason only applies to rejects.
func (r *WaitlistRepository) SetStatus(ctx context.Context, id int64, status domain.WaitlistStatus, reviewerID int64, reason string) error {
	updates := map[string]any{
		"status":      string(status),
		"reviewed_by": reviewerID,
		"reviewed_at": time.Now().UTC(),
	}
	if reason != "" {
		updates["rejected_reason"] = reason
	}
	return r.db.WithContext(ctx).Model(&waitlistModel{}).Where("id = ?", id).Updates(updates).Error
}
