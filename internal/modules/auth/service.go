package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"draftdeck/internal/domain"
	"draftdeck/internal/pkg/mailer"
	"draftdeck/internal/pkg/password"
	"draftdeck/internal/pkg/tokens"

	"gorm.io/gorm"
)

// Service contains all business logic for authentication.
type Service struct {
	users       UserRepositoryInterface
	waitlist    WaitlistReader
	tokens      *tokens.Manager
	mailer      mailer.Mailer
	frontendURL string
}

type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func NewService(
	users UserRepositoryInterface,
	waitlist WaitlistReader,
	tokenManager *tokens.Manager,
	m mailer.Mailer,
	frontendURL string,
) *Service {
	return &Service{
		users:       users,
		waitlist:    waitlist,
		tokens:      tokenManager,
		mailer:      m,
		frontendURL: frontendURL,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validateEmailUnique(ctx, email); err != nil {
		return nil, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashed,
		Name:         req.Name,
		Role:         domain.RoleUser,
		BetaStatus:   s.betaStatusFor(ctx, email),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.tokens.GeneratePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unknown email and wrong password report identically.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" || !password.Compare(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.GeneratePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

// Refresh rotates the session: the presented refresh token is verified,
// the user is re-read to confirm it still exists, and a brand-new
// access+refresh pair replaces the old one. The old refresh token is
// superseded, not blacklisted.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	payload, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	pair, err := s.tokens.GeneratePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}

func (s *Service) GetCurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ForgotPassword issues a reset token and mails the link. An unknown
// email is reported as accepted so the endpoint cannot be used to
// enumerate accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("password/forgot: email not found (masked)")
			return nil
		}
		return err
	}

	token, expiry, err := tokens.NewResetToken()
	if err != nil {
		return err
	}

	// Overwrites any prior outstanding token: at most one live per user.
	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	body := fmt.Sprintf("Someone requested a password reset for this account.\n\n"+
		"Reset link (valid for 1 hour): %s\n\n"+
		"If this wasn't you, ignore this email.", link)
	return s.mailer.Send(ctx, user.Email, "Reset your DraftDeck password", body)
}

// ResetPassword consumes a reset token. Consumption always clears the
// stored token, valid or not, so a stale token cannot be retried.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.GetByResetToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}

	if !tokens.ResetTokenValid(user.ResetTokenExpiry) {
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			return clearErr
		}
		return ErrResetTokenExpired
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	// Password update and token clearing land in a single UPDATE.
	return s.users.ConsumeResetToken(ctx, user.ID, hashed)
}

func (s *Service) validateEmailUnique(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *Service) betaStatusFor(ctx context.Context, email string) domain.BetaStatus {
	if s.waitlist == nil {
		return domain.BetaPending
	}
	entry, err := s.waitlist.GetByEmail(ctx, email)
	if err != nil || entry == nil {
		return domain.BetaPending
	}
	if entry.Status == domain.WaitlistApproved {
		return domain.BetaApproved
	}
	return domain.BetaPending
}
