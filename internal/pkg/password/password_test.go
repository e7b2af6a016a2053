package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("secret1")
	assert.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, Compare("secret1", hash))
	assert.False(t, Compare("secret2", hash))
}

func TestHash_FreshSaltPerCall(t *testing.T) {
	first, err := Hash("same-input")
	assert.NoError(t, err)
	second, err := Hash("same-input")
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Compare("same-input", first))
	assert.True(t, Compare("same-input", second))
}

func TestHash_EmbedsCost(t *testing.T) {
	hash, err := Hash("whatever")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))
}

func TestCompare_GarbageHash(t *testing.T) {
	assert.False(t, Compare("anything", "not-a-bcrypt-hash"))
	assert.False(t, Compare("anything", ""))
}
