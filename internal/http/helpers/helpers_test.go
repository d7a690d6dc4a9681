package helpers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/validation"
)

type productForm struct {
	Name  string   `form:"product_name" validate:"notblank"`
	Price *float64 `form:"price" validate:"required,gte=0"`
	Stock int      `form:"stock"`
	Notes *string  `form:"notes"`
}

type patch struct {
	Name *string `json:"name"`
}

func (p patch) Empty() bool { return p.Name == nil }

func multipartRequest(t *testing.T, fields map[string]string, files ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, name := range files {
		fw, err := mw.CreateFormFile("image", name)
		require.NoError(t, err)
		_, _ = fw.Write([]byte("\x89PNG"))
	}
	require.NoError(t, mw.Close())
	r := httptest.NewRequest(http.MethodPost, "/v1/product", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestBindForm(t *testing.T) {
	r := multipartRequest(t, map[string]string{"product_name": " Whey ", "price": "49.9", "stock": "3"}, "a.png")
	f, err := ParseMultipart(httptest.NewRecorder(), r, 1<<20)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.File.Close()
	assert.Equal(t, "a.png", f.Header.Filename)

	var in productForm
	require.NoError(t, BindForm(r, &in))
	assert.Equal(t, "Whey", in.Name)
	require.NotNil(t, in.Price)
	assert.Equal(t, 49.9, *in.Price)
	assert.Equal(t, 3, in.Stock)
	assert.Nil(t, in.Notes)
}

func TestBindForm_BadNumber(t *testing.T) {
	r := multipartRequest(t, map[string]string{"product_name": "x", "price": "abc"})
	f, err := ParseMultipart(httptest.NewRecorder(), r, 1<<20)
	require.NoError(t, err)
	assert.Nil(t, f)

	var in productForm
	err = BindForm(r, &in)
	fes, ok := validation.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "price", fes[0].Field)
}

func TestBindForm_ReportsEveryBadField(t *testing.T) {
	r := multipartRequest(t, map[string]string{"product_name": "x", "price": "abc", "stock": "many"})
	_, err := ParseMultipart(httptest.NewRecorder(), r, 1<<20)
	require.NoError(t, err)

	in := productForm{Notes: ptrTo("keep")}
	fes, ok := validation.IsValidation(BindForm(r, &in))
	require.True(t, ok)
	require.Len(t, fes, 2)
	assert.Equal(t, "price", fes[0].Field)
	assert.Equal(t, "stock", fes[1].Field)
	assert.Equal(t, "keep", *in.Notes)
}

func ptrTo[T any](v T) *T { return &v }

func TestParseMultipart_TwoFiles(t *testing.T) {
	r := multipartRequest(t, nil, "a.png", "b.png")
	_, err := ParseMultipart(httptest.NewRecorder(), r, 1<<20)
	assert.ErrorIs(t, err, httperrors.ErrInvalidFile)
}

func TestBindJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{}`))
	var p patch
	assert.False(t, BindJSON(rec, r, &p))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":`))
	assert.False(t, BindJSON(rec, r, &p))
	assert.Contains(t, rec.Body.String(), "INVALID_JSON")

	rec = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"name":"x"}`))
	require.True(t, BindJSON(rec, r, &p))
	assert.Equal(t, "x", *p.Name)
}
