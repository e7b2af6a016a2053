package waitlist

import (
	"context"

	"draftdeck/internal/domain"
)

type WaitlistRepositoryInterface interface {
	Create(ctx context.Context, e *domain.WaitlistEntry) error
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	GetByEmail(ctx context.Context, email string) (*domain.WaitlistEntry, error)
	List(ctx context.Context, status string, limit, offset int) ([]domain.WaitlistEntry, int64, error)
	SetStatus(ctx context.Context, id int64, status domain.WaitlistStatus, reviewerID int64, reason string) error
}

// UserUpdater flips the account's beta flag when the waitlist decision
// lands after the user already registered.
type UserUpdater interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}
