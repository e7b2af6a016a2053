package password

import "golang.org/x/crypto/bcrypt"

// Cost is fixed: bumping it invalidates nothing (bcrypt embeds the cost
// in the hash) but keeps login latency predictable.
const Cost = 10

func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether plaintext matches the stored hash.
// A mismatch is not an error, it is just false.
func Compare(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
