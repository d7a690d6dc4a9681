// Package gym contiene los controllers HTTP de las entidades del tenant.
package gym

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/http/helpers"
	svc "github.com/dropDatabas3/gymcore/internal/http/services/gym"
	"github.com/dropDatabas3/gymcore/internal/objectstore"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

// Controllers agrupa los controllers del dominio gym.
type Controllers struct {
	s         svc.Services
	maxUpload int64
}

func NewControllers(s svc.Services, maxUpload int64) *Controllers {
	if maxUpload <= 0 {
		maxUpload = objectstore.DefaultMaxBytes
	}
	return &Controllers{s: s, maxUpload: maxUpload}
}

func ok(w http.ResponseWriter, status int, msg string, data any) {
	httperrors.WriteJSON(w, status, msg, data)
}

func fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger.From(r.Context()).Debug("request failed",
		logger.Layer("controller"), logger.Op(op), logger.Err(err))
	httperrors.WriteError(w, r, err)
}

func param(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// bindCatalog lee un DTO de catálogo desde JSON o multipart/form-data y,
// en multipart, la imagen opcional. done libera el archivo.
func (c *Controllers) bindCatalog(w http.ResponseWriter, r *http.Request, dst any) (img *svc.Image, done func(), okay bool) {
	done = func() {}
	if !helpers.IsMultipart(r) {
		return nil, done, helpers.BindJSON(w, r, dst)
	}
	f, err := helpers.ParseMultipart(w, r, c.maxUpload)
	if err != nil {
		httperrors.WriteError(w, r, err)
		return nil, done, false
	}
	if f != nil {
		done = func() { _ = f.File.Close() }
		img = &svc.Image{
			Filename:    f.Header.Filename,
			ContentType: f.Header.Header.Get("Content-Type"),
			Size:        f.Header.Size,
			Body:        f.File,
		}
	}
	if err := helpers.BindForm(r, dst); err != nil {
		httperrors.WriteError(w, r, err)
		return nil, done, false
	}
	if err := helpers.Check(dst); err != nil {
		// una imagen sola alcanza como patch
		if img == nil || !helpers.IsEmptyPatch(err) {
			httperrors.WriteError(w, r, err)
			return nil, done, false
		}
	}
	return img, done, true
}
