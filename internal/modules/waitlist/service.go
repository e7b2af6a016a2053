package waitlist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"draftdeck/internal/domain"
	"draftdeck/internal/pkg/mailer"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type Service struct {
	entries     WaitlistRepositoryInterface
	users       UserUpdater
	mailer      mailer.Mailer
	frontendURL string
}

func NewService(entries WaitlistRepositoryInterface, users UserUpdater, m mailer.Mailer, frontendURL string) *Service {
	return &Service{
		entries:     entries,
		users:       users,
		mailer:      m,
		frontendURL: frontendURL,
	}
}

// Join is idempotent: a second submit with the same email returns the
// existing entry instead of an error.
func (s *Service) Join(ctx context.Context, req JoinRequest) (*domain.WaitlistEntry, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	entry := &domain.WaitlistEntry{
		Email:  email,
		Name:   req.Name,
		Status: domain.WaitlistPending,
	}

	err := s.entries.Create(ctx, entry)
	if err == nil {
		return entry, nil
	}

	if isUniqueViolation(err) {
		existing, getErr := s.entries.GetByEmail(ctx, email)
		if getErr != nil {
			return nil, err
		}
		return existing, nil
	}
	return nil, err
}

func (s *Service) List(ctx context.Context, status string, page, limit int) ([]domain.WaitlistEntry, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.entries.List(ctx, status, limit, (page-1)*limit)
}

// Approve lets the entry into the beta. If the email already has an
// account, the account's beta flag flips too; either way an invite
// email goes out.
func (s *Service) Approve(ctx context.Context, entryID, adminID int64) (*domain.WaitlistEntry, error) {
	entry, err := s.getPending(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if err := s.entries.SetStatus(ctx, entry.ID, domain.WaitlistApproved, adminID, ""); err != nil {
		return nil, err
	}
	entry.Status = domain.WaitlistApproved

	if user, err := s.users.GetByEmail(ctx, entry.Email); err == nil {
		user.BetaStatus = domain.BetaApproved
		if updErr := s.users.Update(ctx, user); updErr != nil {
			return nil, updErr
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The review is already committed; the invite mail is best effort.
	body := fmt.Sprintf("You're in! Your DraftDeck beta access is ready.\n\n"+
		"Sign in (or create your account) here: %s/login", s.frontendURL)
	if mailErr := s.mailer.Send(ctx, entry.Email, "Welcome to the DraftDeck beta", body); mailErr != nil {
		log.Printf("waitlist: invite mail to %s failed: %v", entry.Email, mailErr)
	}

	return entry, nil
}

func (s *Service) Reject(ctx context.Context, entryID, adminID int64, reason string) (*domain.WaitlistEntry, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	entry, err := s.getPending(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if err := s.entries.SetStatus(ctx, entry.ID, domain.WaitlistRejected, adminID, reason); err != nil {
		return nil, err
	}
	entry.Status = domain.WaitlistRejected
	entry.RejectedReason = reason

	return entry, nil
}

func (s *Service) getPending(ctx context.Context, entryID int64) (*domain.WaitlistEntry, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if entry.Status != domain.WaitlistPending {
		return nil, ErrAlreadyReviewed
	}
	return entry, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	// SQLite in local dev reports constraint failures textually.
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
