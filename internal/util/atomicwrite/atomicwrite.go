// Package atomicwrite escribe archivos vía temporal + rename, así un lector
// nunca ve un archivo a medio escribir (imágenes servidas en /uploads, claves).
package atomicwrite

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile escribe data en path de forma atómica.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	_, err := Copy(path, bytes.NewReader(data), perm)
	return err
}

// Copy vuelca r en path de forma atómica y retorna los bytes escritos.
// Pasos: temporal en el mismo dir → fsync → chmod → rename. Si rename falla
// (Windows con destino bloqueado) reintenta tras borrar el destino.
func Copy(path string, r io.Reader, perm fs.FileMode) (int64, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		return n, fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return n, fmt.Errorf("fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return n, fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return n, fmt.Errorf("rename: %v (after remove: %v)", err, err2)
		}
	}
	return n, nil
}
