package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheck(t *testing.T) {
	t.Setenv("UAP_BCRYPT_COST", "4")

	hash, err := HashPassword("pw123")
	assert.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"))

	assert.True(t, CheckPasswordHash(hash, "pw123"))
	assert.False(t, CheckPasswordHash(hash, "pw124"))
	assert.False(t, CheckPasswordHash(hash, ""))
}

func TestHashIsSalted(t *testing.T) {
	t.Setenv("UAP_BCRYPT_COST", "4")

	first, err := HashPassword("pw123")
	assert.NoError(t, err)
	second, err := HashPassword("pw123")
	assert.NoError(t, err)

	// same plaintext, different salt, different hash
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash(first, "pw123"))
	assert.True(t, CheckPasswordHash(second, "pw123"))
}
