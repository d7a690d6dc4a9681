package jwt

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dropDatabas3/gymcore/internal/util/atomicwrite"
)

// KeySet mantiene una sola clave activa. El KID se deriva de la pública.
type KeySet struct {
	Priv ed25519.PrivateKey
	Pub  ed25519.PublicKey
	KID  string
	Alg  string // "EdDSA"
}

// NewEd25519 genera una clave en memoria (dev y tests).
func NewEd25519() (*KeySet, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return fromPrivate(priv), nil
}

func fromPrivate(priv ed25519.PrivateKey) *KeySet {
	pub := priv.Public().(ed25519.PublicKey)
	sum := sha256.Sum256(pub)
	return &KeySet{
		Priv: priv,
		Pub:  pub,
		KID:  base64.RawURLEncoding.EncodeToString(sum[:8]),
		Alg:  "EdDSA",
	}
}

// LoadKeyFile lee una clave privada Ed25519 PEM (PKCS#8).
func LoadKeyFile(path string) (*KeySet, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("jwt: read key: %w", err)
	}
	block, _ := pem.Decode(b)
	if block == nil || block.Type != "PRIVATE KEY" {
		return nil, errors.New("jwt: key file is not a PEM private key")
	}
	k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwt: parse key: %w", err)
	}
	priv, ok := k.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwt: key is not ed25519")
	}
	return fromPrivate(priv), nil
}

// WriteKeyFile persiste la clave privada como PEM PKCS#8 con permisos 0600.
func (k *KeySet) WriteKeyFile(path string) error {
	der, err := x509.MarshalPKCS8PrivateKey(k.Priv)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return atomicwrite.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0o600)
}
