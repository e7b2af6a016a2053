package tokens

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const resetTokenTTL = time.Hour

// NewResetToken returns a 256-bit random token and its expiry, one hour
// out. The caller persists both on the user record, overwriting any
// prior outstanding token.
func NewResetToken() (token string, expiry time.Time, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", time.Time{}, err
	}
	return hex.EncodeToString(buf), time.Now().Add(resetTokenTTL), nil
}

// ResetTokenValid reports whether a stored expiry is still live.
// A missing expiry is always invalid.
func ResetTokenValid(expiry *time.Time) bool {
	if expiry == nil {
		return false
	}
	return time.Now().Before(*expiry)
}
