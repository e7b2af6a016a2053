package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewResetToken(t *testing.T) {
	token, expiry, err := NewResetToken()
	assert.NoError(t, err)
	assert.Len(t, token, 64) // 32 random bytes, hex encoded
	assert.True(t, expiry.After(time.Now()))
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)
}

func TestNewResetToken_NoReuse(t *testing.T) {
	first, _, err := NewResetToken()
	assert.NoError(t, err)
	second, _, err := NewResetToken()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestResetTokenValid(t *testing.T) {
	assert.False(t, ResetTokenValid(nil))

	future := time.Now().Add(30 * time.Minute)
	assert.True(t, ResetTokenValid(&future))

	past := time.Now().Add(-time.Minute)
	assert.False(t, ResetTokenValid(&past))
}
