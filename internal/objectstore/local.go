package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dropDatabas3/gymcore/internal/observability/logger"
	"github.com/dropDatabas3/gymcore/internal/util/atomicwrite"
)

// Local guarda los objetos bajo Dir y los sirve en PublicBase (ver Handler).
type Local struct {
	Dir        string
	PublicBase string
}

func NewLocal(dir, publicBase string) (*Local, error) {
	if dir == "" {
		dir = "./data/uploads"
	}
	if publicBase == "" {
		publicBase = "/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("objectstore: mkdir %s: %w", dir, err)
	}
	return &Local{Dir: dir, PublicBase: publicBase}, nil
}

func (l *Local) Name() string { return "local" }

func (l *Local) Upload(ctx context.Context, folder, filename, _ string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := Key(folder, filename)
	dst := filepath.Join(l.Dir, filepath.FromSlash(key))
	if _, err := atomicwrite.Copy(dst, body, 0o644); err != nil {
		return "", fmt.Errorf("objectstore: write: %w", err)
	}

	logger.From(ctx).Debug("object stored", logger.Component("objectstore.local"), logger.String("key", key))
	return joinURL(l.PublicBase, key), nil
}

func (l *Local) Delete(ctx context.Context, url string) error {
	key, ok := keyFromURL(l.PublicBase, url)
	if !ok {
		return fmt.Errorf("%w: url outside %s", ErrInvalidFile, l.PublicBase)
	}
	err := os.Remove(filepath.Join(l.Dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("objectstore: delete: %w", err)
	}
	logger.From(ctx).Debug("object deleted", logger.Component("objectstore.local"), logger.String("key", key))
	return nil
}

// Handler sirve los archivos subidos. Se monta en el path de PublicBase
// (PublicBase puede ser una URL absoluta).
func (l *Local) Handler() http.Handler {
	prefix := l.PublicBase
	if u, err := neturl.Parse(prefix); err == nil && u.Host != "" {
		prefix = u.Path
	}
	return http.StripPrefix(strings.TrimRight(prefix, "/"), http.FileServer(http.Dir(l.Dir)))
}
