package auth

import (
	"context"
	"time"

	"draftdeck/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
	SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error
	ClearResetToken(ctx context.Context, userID int64) error
	ConsumeResetToken(ctx context.Context, userID int64, newPasswordHash string) error
}

// WaitlistReader tells registration whether an email was already let
// into the beta.
type WaitlistReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error)
}
