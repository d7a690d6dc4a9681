// Package token genera tokens opacos (refresh, reset, verify). Solo el hash
// se persiste.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// Size es la cantidad de bytes aleatorios de un token.
const Size = 32

// New retorna el token en claro (base64url sin padding) y su hash.
func New() (plain, hash string, err error) {
	b := make([]byte, Size)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	plain = base64.RawURLEncoding.EncodeToString(b)
	return plain, Hash(plain), nil
}

// Hash devuelve sha256(s) en base64url sin padding.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
