package jwt

import (
	"path/filepath"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	ks, err := NewEd25519()
	require.NoError(t, err)
	return NewIssuer("gymcore-test", ks, time.Minute)
}

func TestIssueAndParse(t *testing.T) {
	iss := newTestIssuer(t)

	tok, exp, err := iss.IssueAccess("user-1", "ACCOUNT_USER", "a@b.test")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 2*time.Second)

	claims, err := iss.ParseAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ACCOUNT_USER", claims.Role)
	assert.Equal(t, "a@b.test", claims.Email)
}

func TestParse_Expired(t *testing.T) {
	iss := newTestIssuer(t)
	iss.now = func() time.Time { return time.Now().Add(-10 * time.Minute) }
	tok, _, err := iss.IssueAccess("user-1", "SUPERADMIN", "")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.ParseAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_OtherKeyOrIssuer(t *testing.T) {
	a := newTestIssuer(t)
	b := newTestIssuer(t)

	tok, _, err := a.IssueAccess("user-1", "SUPERADMIN", "")
	require.NoError(t, err)
	_, err = b.ParseAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewIssuer("someone-else", a.Keys, time.Minute)
	_, err = other.ParseAccess(tok)
	assert.ErrorIs(t, err, ErrInvalidIssuer)
}

func TestParse_RejectsNonAccessTyp(t *testing.T) {
	iss := newTestIssuer(t)
	claims := AccessClaims{
		Typ: "refresh",
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    iss.Iss,
			Subject:   "user-1",
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodEdDSA, claims)
	signed, err := tk.SignedString(iss.Keys.Priv)
	require.NoError(t, err)

	_, err = iss.ParseAccess(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	iss := newTestIssuer(t)
	_, err := iss.ParseAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestKeyFileRoundTrip(t *testing.T) {
	ks, err := NewEd25519()
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), "keys", "jwt.pem")
	require.NoError(t, ks.WriteKeyFile(p))

	loaded, err := LoadKeyFile(p)
	require.NoError(t, err)
	assert.Equal(t, ks.KID, loaded.KID)
	assert.Equal(t, ks.Pub, loaded.Pub)
}
