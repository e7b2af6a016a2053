package tokens

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Config holds everything the manager needs; there is no other state.
// Access and refresh secrets must differ so that compromise of one
// channel does not compromise the other.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Payload is the closed set of identity fields carried by both token
// kinds. Anything else in the claims is ignored at decode time.
type Payload struct {
	UserID int64
	Email  string
}

type Pair struct {
	AccessToken  string
	RefreshToken string
}

type claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwtlib.RegisteredClaims
}

type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(cfg Config) *Manager {
	return &Manager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
	}
}

func (m *Manager) MintAccess(p Payload) (string, error) {
	return mint(p, m.accessSecret, m.accessTTL, "")
}

func (m *Manager) MintRefresh(p Payload) (string, error) {
	return mint(p, m.refreshSecret, m.refreshTTL, uuid.NewString())
}

// GeneratePair mints a fresh access+refresh pair for the same identity.
// Used on login, registration, OAuth callback and refresh rotation.
func (m *Manager) GeneratePair(userID int64, email string) (*Pair, error) {
	p := Payload{UserID: userID, Email: email}
	access, err := m.MintAccess(p)
	if err != nil {
		return nil, err
	}
	refresh, err := m.MintRefresh(p)
	if err != nil {
		return nil, err
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *Manager) VerifyAccess(token string) (*Payload, error) {
	return verify(token, m.accessSecret)
}

func (m *Manager) VerifyRefresh(token string) (*Payload, error) {
	return verify(token, m.refreshSecret)
}

func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

func mint(p Payload, secret []byte, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	c := claims{
		UserID: p.UserID,
		Email:  p.Email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c)
	return token.SignedString(secret)
}

func verify(tokenStr string, secret []byte) (*Payload, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if c.UserID == 0 || c.Email == "" {
		return nil, ErrTokenInvalid
	}
	return &Payload{UserID: c.UserID, Email: c.Email}, nil
}
