package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"draftdeck/internal/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrOAuthFailed = errors.New("oauth exchange failed")

// GoogleVerifier exchanges an authorization code for the verified
// Google identity. Split out as an interface so the service tests can
// stub the network round-trip.
type GoogleVerifier interface {
	AuthURL(state string) string
	Verify(ctx context.Context, code string) (*GoogleIdentity, error)
}

type GoogleIdentity struct {
	ID    string
	Email string
	Name  string
}

type googleVerifier struct {
	cfg *oauth2.Config
}

func NewGoogleVerifier(clientID, clientSecret, redirectURL string) GoogleVerifier {
	return &googleVerifier{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (g *googleVerifier) AuthURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *googleVerifier) Verify(ctx context.Context, code string) (*GoogleIdentity, error) {
	token, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthFailed, err)
	}

	client := g.cfg.Client(ctx, token)
	resp, err := client.Get(googleUserinfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo status %d", ErrOAuthFailed, resp.StatusCode)
	}

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthFailed, err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, ErrOAuthFailed
	}

	return &GoogleIdentity{ID: info.ID, Email: info.Email, Name: info.Name}, nil
}

// LoginWithGoogle finds or creates the local account for a verified
// Google identity and mints our own token pair. The external identity
// is only consumed here; Google tokens are never stored.
func (s *Service) LoginWithGoogle(ctx context.Context, identity *GoogleIdentity) (*LoginResult, error) {
	user, err := s.users.GetByGoogleID(ctx, identity.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		email := strings.ToLower(strings.TrimSpace(identity.Email))

		// Link to an existing password account with the same email.
		user, err = s.users.GetByEmail(ctx, email)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user = &domain.User{
				Email:      email,
				Name:       identity.Name,
				Role:       domain.RoleUser,
				GoogleID:   identity.ID,
				BetaStatus: s.betaStatusFor(ctx, email),
			}
			if err := s.users.Create(ctx, user); err != nil {
				return nil, err
			}
		} else {
			user.GoogleID = identity.ID
			if err := s.users.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	pair, err := s.tokens.GeneratePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, nil
}
