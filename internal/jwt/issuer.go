package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const typAccess = "access"

var (
	ErrInvalidToken  = errors.New("invalid_jwt")
	ErrInvalidIssuer = errors.New("invalid_issuer")
)

// AccessClaims son las claims del access token.
type AccessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Typ   string `json:"typ"`
	jwtv5.RegisteredClaims
}

// Issuer firma y valida access tokens EdDSA.
type Issuer struct {
	Iss       string        // "iss"
	Keys      *KeySet       // clave activa
	AccessTTL time.Duration // default 15m
	now       func() time.Time
}

func NewIssuer(iss string, keys *KeySet, accessTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	return &Issuer{Iss: iss, Keys: keys, AccessTTL: accessTTL, now: time.Now}
}

// IssueAccess emite un access token para sub con su rol.
func (i *Issuer) IssueAccess(sub, role, email string) (string, time.Time, error) {
	now := i.now().UTC()
	exp := now.Add(i.AccessTTL)

	claims := AccessClaims{
		Role:  role,
		Email: email,
		Typ:   typAccess,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   sub,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodEdDSA, claims)
	tk.Header["kid"] = i.Keys.KID
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.Keys.Priv)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccess valida firma, iss, exp/nbf (30s de tolerancia) y typ=access.
func (i *Issuer) ParseAccess(token string) (*AccessClaims, error) {
	var claims AccessClaims
	keyfunc := func(t *jwtv5.Token) (any, error) {
		if kid, _ := t.Header["kid"].(string); kid != "" && kid != i.Keys.KID {
			return nil, errors.New("unknown kid")
		}
		return i.Keys.Pub, nil
	}
	tok, err := jwtv5.ParseWithClaims(token, &claims, keyfunc,
		jwtv5.WithValidMethods([]string{"EdDSA"}),
		jwtv5.WithLeeway(30*time.Second),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(i.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != i.Iss {
		return nil, ErrInvalidIssuer
	}
	if claims.Typ != typAccess || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
