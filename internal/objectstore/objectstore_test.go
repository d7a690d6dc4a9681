package objectstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	cases := []struct {
		name, file, ct string
		size           int64
		wantErr        error
	}{
		{"jpg", "a.jpg", "image/jpeg", 10, nil},
		{"jpeg upper", "A.JPEG", "", 10, nil},
		{"png", "a.png", "image/png", 10, nil},
		{"octet stream", "a.png", "application/octet-stream", 10, nil},
		{"gif", "a.gif", "image/gif", 10, ErrInvalidFile},
		{"no ext", "a", "", 10, ErrInvalidFile},
		{"ct mismatch", "a.png", "image/jpeg", 10, ErrInvalidFile},
		{"empty", "a.png", "", 0, ErrInvalidFile},
		{"too large", "a.png", "", DefaultMaxBytes + 1, ErrTooLarge},
		{"limit", "a.png", "", DefaultMaxBytes, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateImage(tc.file, tc.ct, tc.size, 0)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestKey(t *testing.T) {
	k := Key(FolderBrands, "Logo.PNG")
	assert.True(t, strings.HasPrefix(k, "brand_images/"))
	assert.True(t, strings.HasSuffix(k, ".png"))
	assert.NotEqual(t, k, Key(FolderBrands, "Logo.PNG"))
}

func TestLocal_UploadServeDelete(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "/uploads")
	require.NoError(t, err)

	url, err := l.Upload(context.Background(), FolderProducts, "p.jpg", "image/jpeg", strings.NewReader("jpegdata"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/product_images/"))

	rec := httptest.NewRecorder()
	l.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, "jpegdata", string(body))

	require.NoError(t, l.Delete(context.Background(), url))
	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	assert.True(t, os.IsNotExist(err))

	// borrar dos veces no falla
	assert.NoError(t, l.Delete(context.Background(), url))
	assert.ErrorIs(t, l.Delete(context.Background(), "/other/x.png"), ErrInvalidFile)
	assert.ErrorIs(t, l.Delete(context.Background(), "/uploads/../etc/passwd"), ErrInvalidFile)
}

func TestPublicBaseFor(t *testing.T) {
	assert.Equal(t, "https://cdn.gym.test", publicBaseFor(S3Config{Bucket: "b", PublicBase: "https://cdn.gym.test"}))
	assert.Equal(t, "http://minio:9000/b", publicBaseFor(S3Config{Bucket: "b", Endpoint: "http://minio:9000", PathStyle: true}))
	assert.Equal(t, "https://b.s3.sa-east-1.amazonaws.com", publicBaseFor(S3Config{Bucket: "b", Region: "sa-east-1"}))
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), Config{Driver: "ftp"})
	assert.Error(t, err)
}
