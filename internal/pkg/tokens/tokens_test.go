package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testManager() *Manager {
	return NewManager(Config{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := testManager()

	token, err := m.MintAccess(Payload{UserID: 7, Email: "u@x.com"})
	assert.NoError(t, err)

	p, err := m.VerifyAccess(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, "u@x.com", p.Email)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	m := testManager()

	token, err := m.MintRefresh(Payload{UserID: 7, Email: "u@x.com"})
	assert.NoError(t, err)

	p, err := m.VerifyRefresh(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, "u@x.com", p.Email)
}

func TestGeneratePair_BothTokensVerify(t *testing.T) {
	m := testManager()

	pair, err := m.GeneratePair(7, "u@x.com")
	assert.NoError(t, err)

	access, err := m.VerifyAccess(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), access.UserID)
	assert.Equal(t, "u@x.com", access.Email)

	refresh, err := m.VerifyRefresh(pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), refresh.UserID)
	assert.Equal(t, "u@x.com", refresh.Email)
}

func TestVerify_CrossSecretAlwaysFails(t *testing.T) {
	m := testManager()

	access, _ := m.MintAccess(Payload{UserID: 1, Email: "a@x.com"})
	refresh, _ := m.MintRefresh(Payload{UserID: 1, Email: "a@x.com"})

	// access token against the refresh secret and vice versa
	_, err := m.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// token minted under a completely different secret
	other := NewManager(Config{
		AccessSecret:  "some-other-secret",
		RefreshSecret: "and-another-one",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
	})
	foreign, _ := other.MintAccess(Payload{UserID: 1, Email: "a@x.com"})
	_, err = m.VerifyAccess(foreign)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	m := testManager()

	_, err := m.VerifyAccess("not-a-jwt-at-all")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.VerifyAccess("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_ExpiredIsExpiryError(t *testing.T) {
	// Negative TTL mints an already-expired token. The failure must be
	// the expiry class, not the signature class.
	m := NewManager(Config{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     -time.Second,
		RefreshTTL:    -time.Second,
	})

	access, err := m.MintAccess(Payload{UserID: 3, Email: "old@x.com"})
	assert.NoError(t, err)
	_, err = m.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrTokenExpired)

	refresh, err := m.MintRefresh(Payload{UserID: 3, Email: "old@x.com"})
	assert.NoError(t, err)
	_, err = m.VerifyRefresh(refresh)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_TamperedPayload(t *testing.T) {
	m := testManager()

	token, _ := m.MintAccess(Payload{UserID: 5, Email: "u@x.com"})
	tampered := token[:len(token)-4] + "AAAA"

	_, err := m.VerifyAccess(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
