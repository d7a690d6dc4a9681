package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a, ha, err := New()
	require.NoError(t, err)
	b, hb, err := New()
	require.NoError(t, err)

	assert.Len(t, a, 43) // 32 bytes base64url sin padding
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, ha, hb)
	assert.Equal(t, ha, Hash(a))
	assert.NotEqual(t, a, ha)
}

func TestHash_Stable(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ungWv48Bz-pBQUDeXa4iI7ADYaOWF3qctBD_YfIAFa0", Hash("abc"))
}
