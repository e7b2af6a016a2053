package repository

import (
	"context"
	"strings"
	"time"

	"draftdeck/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	Email            string     `gorm:"column:email;uniqueIndex"`
	PasswordHash     string     `gorm:"column:password_hash"`
	Name             string     `gorm:"column:name"`
	Role             string     `gorm:"column:role"`
	BetaStatus       *string    `gorm:"column:beta_status"`
	GoogleID         *string    `gorm:"column:google_id;index"`
	ResetToken       *string    `gorm:"column:reset_token;index"`
	ResetTokenExpiry *time.Time `gorm:"column:reset_token_expiry"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func toDomainUser(m userModel) *domain.User {
	var betaStatus, googleID, resetToken string
	if m.BetaStatus != nil {
		betaStatus = *m.BetaStatus
	}
	if m.GoogleID != nil {
		googleID = *m.GoogleID
	}
	if m.ResetToken != nil {
		resetToken = *m.ResetToken
	}

	return &domain.User{
		ID:               m.ID,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		Name:             m.Name,
		Role:             domain.UserRole(m.Role),
		BetaStatus:       domain.BetaStatus(betaStatus),
		GoogleID:         googleID,
		ResetToken:       resetToken,
		ResetTokenExpiry: m.ResetTokenExpiry,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	email := strings.TrimSpace(strings.ToLower(u.Email))

	var betaStatus, googleID, resetToken *string
	if u.BetaStatus != "" {
		v := string(u.BetaStatus)
		betaStatus = &v
	}
	if u.GoogleID != "" {
		v := u.GoogleID
		googleID = &v
	}
	if u.ResetToken != "" {
		v := u.ResetToken
		resetToken = &v
	}

	return userModel{
		ID:               u.ID,
		Email:            email,
		PasswordHash:     u.PasswordHash,
		Name:             u.Name,
		Role:             string(u.Role),
		BetaStatus:       betaStatus,
		GoogleID:         googleID,
		ResetToken:       resetToken,
		ResetTokenExpiry: u.ResetTokenExpiry,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("reset_token = ?", token).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", m.ID).Updates(map[string]any{
		"name":        m.Name,
		"role":        m.Role,
		"beta_status": m.BetaStatus,
		"google_id":   m.GoogleID,
		"updated_at":  time.Now().UTC(),
	}).Error
}

// SetResetToken stores a fresh reset token, overwriting any prior one.
func (r *UserRepository) SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Updates(map[string]any{
		"reset_token":        token,
		"reset_token_expiry": expiry,
		"updated_at":         time.Now().UTC(),
	}).Error
}

// ClearResetToken drops the outstanding token so it cannot be retried.
func (r *UserRepository) ClearResetToken(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Updates(map[string]any{
		"reset_token":        nil,
		"reset_token_expiry": nil,
		"updated_at":         time.Now().UTC(),
	}).Error
}

// ConsumeResetToken applies the new password hash and clears the token
// fields in one update, so a crash cannot leave a live token behind an
// already-changed password.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, userID int64, newPasswordHash string) error {
	return r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Updates(map[string]any{
		"password_hash":      newPasswordHash,
		"reset_token":        nil,
		"reset_token_expiry": nil,
		"updated_at":         time.Now().UTC(),
	}).Error
}
