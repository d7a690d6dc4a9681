// Package objectstore sube las imágenes del catálogo (categorías, marcas y
// productos) a disco local o S3 y devuelve la URL pública.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Carpetas de destino por entidad.
const (
	FolderCategories = "product_category_images"
	FolderBrands     = "brand_images"
	FolderProducts   = "product_images"
)

// DefaultMaxBytes es el tamaño máximo de una imagen (5 MiB).
const DefaultMaxBytes int64 = 5 << 20

var (
	ErrInvalidFile = errors.New("objectstore: invalid file")
	ErrTooLarge    = errors.New("objectstore: file too large")
)

// Uploader persiste un objeto y devuelve su URL pública.
type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
	// Delete borra el objeto referido por una URL devuelta por Upload.
	Delete(ctx context.Context, url string) error
	Name() string
}

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ValidateImage acepta jpg, jpeg y png de hasta max bytes. contentType puede
// venir vacío; si viene debe coincidir con la extensión.
func ValidateImage(filename, contentType string, size, max int64) error {
	if max <= 0 {
		max = DefaultMaxBytes
	}
	ext := strings.ToLower(path.Ext(filename))
	want, ok := allowedExt[ext]
	if !ok {
		return fmt.Errorf("%w: only jpg, jpeg and png are allowed", ErrInvalidFile)
	}
	if ct := strings.ToLower(strings.TrimSpace(contentType)); ct != "" && ct != "application/octet-stream" {
		if i := strings.IndexByte(ct, ';'); i >= 0 {
			ct = strings.TrimSpace(ct[:i])
		}
		if ct != want && !(ct == "image/jpg" && want == "image/jpeg") {
			return fmt.Errorf("%w: content type %q does not match %s", ErrInvalidFile, ct, ext)
		}
	}
	if size <= 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidFile)
	}
	if size > max {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, size, max)
	}
	return nil
}

// ContentType devuelve el mime de la extensión (vacío si no es imagen válida).
func ContentType(filename string) string {
	return allowedExt[strings.ToLower(path.Ext(filename))]
}

// Key arma "<folder>/<uuid><ext>". El nombre original no se usa en la key.
func Key(folder, filename string) string {
	return path.Join(folder, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}

// Config selecciona y configura el uploader.
type Config struct {
	Driver     string // local | s3
	Dir        string
	PublicBase string
	S3         S3Config
}

// New construye el uploader del driver configurado.
func New(ctx context.Context, cfg Config) (Uploader, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "local":
		return NewLocal(cfg.Dir, cfg.PublicBase)
	case "s3":
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("objectstore: unknown driver %q", cfg.Driver)
	}
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}

// keyFromURL recupera la key de una URL armada con joinURL(base, key).
func keyFromURL(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	k := strings.TrimPrefix(url, prefix)
	if k == "" || strings.Contains(k, "..") {
		return "", false
	}
	return k, true
}
