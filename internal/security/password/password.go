// Package password hashea credenciales con argon2id. Verifica además hashes
// bcrypt ($2a$/$2b$/$2y$) heredados de importaciones.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

type Params struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	KeyLen      uint32
}

var Default = Params{Memory: 64 * 1024, Time: 3, Parallelism: 1, KeyLen: 32}

// Fast sirve para tests.
var Fast = Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, KeyLen: 32}

var ErrEmpty = errors.New("empty password")

// Hash devuelve un PHC string: $argon2id$v=19$m=...,t=...,p=...$<saltB64>$<dkB64>
func Hash(p Params, plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	dk := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		p.Memory, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(dk),
	), nil
}

// Verify compara plain contra un hash argon2id o bcrypt.
func Verify(plain, encoded string) bool {
	if plain == "" || encoded == "" {
		return false
	}
	if isBcrypt(encoded) {
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain)) == nil
	}
	return verifyArgon2(plain, encoded)
}

// NeedsRehash reporta si el hash no es argon2id con los parámetros dados.
func NeedsRehash(p Params, encoded string) bool {
	if isBcrypt(encoded) {
		return true
	}
	var m, t, par int
	n, _ := fmt.Sscanf(encoded, "$argon2id$v=19$m=%d,t=%d,p=%d$", &m, &t, &par)
	return n != 3 || uint32(m) != p.Memory || uint32(t) != p.Time || uint8(par) != p.Parallelism
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func verifyArgon2(plain, phc string) bool {
	// $argon2id$v=19$m=..,t=..,p=..$salt$dk
	parts := strings.Split(phc, "$")
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return false
	}
	var m, t, p int
	if n, _ := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); n != 3 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	dkStored, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}
	key := argon2.IDKey([]byte(plain), salt, uint32(t), uint32(m), uint8(p), uint32(len(dkStored)))
	return subtle.ConstantTimeCompare(key, dkStored) == 1
}
