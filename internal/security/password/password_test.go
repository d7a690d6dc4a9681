package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify(t *testing.T) {
	h, err := Hash(Fast, "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h, "$argon2id$v=19$"))

	assert.True(t, Verify("s3cret-pass", h))
	assert.False(t, Verify("wrong", h))
	assert.False(t, Verify("", h))
	assert.False(t, Verify("s3cret-pass", "$argon2id$garbage"))

	_, err = Hash(Fast, "")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestVerify_LegacyBcrypt(t *testing.T) {
	b, err := bcrypt.GenerateFromPassword([]byte("legacy123"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, Verify("legacy123", string(b)))
	assert.False(t, Verify("legacy124", string(b)))
	assert.True(t, NeedsRehash(Default, string(b)))
}

func TestNeedsRehash(t *testing.T) {
	h, err := Hash(Fast, "abc12345")
	require.NoError(t, err)
	assert.False(t, NeedsRehash(Fast, h))
	assert.True(t, NeedsRehash(Default, h))
}

func TestPolicy(t *testing.T) {
	p := DefaultPolicy
	assert.Empty(t, p.Validate("abcd1234"))
	assert.Contains(t, p.Validate("abc1"), "too_short")
	assert.Contains(t, p.Validate("abcdefgh"), "missing_digit")
	assert.Contains(t, p.Validate("12345678"), "missing_letter")

	strict := Policy{MinLength: 4, RequireUpper: true, RequireSymbol: true}
	assert.ElementsMatch(t, []string{"missing_upper", "missing_symbol"}, strict.Validate("abcd"))
	assert.Empty(t, strict.Validate("Abc!"))
}
