package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("rahasia-123")
	require.NoError(t, err)

	assert.True(t, Verify("rahasia-123", hash))
	assert.False(t, Verify("salah", hash))
}

func TestRandomLengthAndCharset(t *testing.T) {
	got, err := Random(16)
	require.NoError(t, err)
	assert.Len(t, got, 16)

	for _, r := range got {
		assert.True(t, strings.ContainsRune(randomChars, r))
	}

	// Too-short requests are raised to the policy minimum
	short, err := Random(3)
	require.NoError(t, err)
	assert.Len(t, short, 8)
	assert.True(t, ValidatePassword(short))
}

func TestHashTokenIsDeterministic(t *testing.T) {
	a := HashToken("refresh-token")
	b := HashToken("refresh-token")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, HashToken("other-token"))
}
