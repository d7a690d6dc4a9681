package atomicwrite

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestCopy(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a", "b.png")

	n, err := Copy(p, strings.NewReader("img"), 0o644)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "img", string(b))

	// sobrescribe
	require.NoError(t, WriteFile(p, []byte("new"), 0o600))
	b, _ = os.ReadFile(p)
	assert.Equal(t, "new", string(b))
}

func TestCopy_ReaderFailsLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := Copy(filepath.Join(dir, "x.png"), failingReader{}, 0o644)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
