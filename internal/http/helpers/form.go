package helpers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/go-playground/form/v4"

	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/validation"
)

// File es la única parte de archivo de un multipart.
type File struct {
	Header *multipart.FileHeader
	File   multipart.File
}

// ParseMultipart parsea el form con límite maxFile para el archivo (más
// margen para los campos). Acepta a lo sumo un archivo, en "image" o en
// cualquier otra parte. El caller debe cerrar File.File.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxFile int64) (*File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFile+MaxJSONBody)
	if err := r.ParseMultipartForm(maxFile); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, httperrors.ErrBodyTooLarge
		}
		return nil, httperrors.ErrBadRequest.WithDetail("invalid multipart form")
	}
	var headers []*multipart.FileHeader
	for _, hs := range r.MultipartForm.File {
		headers = append(headers, hs...)
	}
	switch len(headers) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, httperrors.ErrInvalidFile.WithDetail("only one image is allowed")
	}
	f, err := headers[0].Open()
	if err != nil {
		return nil, httperrors.ErrInvalidFile.WithCause(err)
	}
	return &File{Header: headers[0], File: f}, nil
}

var formDecoder = form.NewDecoder()

// BindForm decodifica los valores del multipart en dst (puntero a struct con
// tags `form`). Los valores llegan sin espacios al borde; un campo ausente del
// form no se toca.
func BindForm(r *http.Request, dst any) error {
	if r.MultipartForm == nil {
		return nil
	}
	vals := make(url.Values, len(r.MultipartForm.Value))
	for k, vs := range r.MultipartForm.Value {
		for _, v := range vs {
			vals.Add(k, strings.TrimSpace(v))
		}
	}
	err := formDecoder.Decode(dst, vals)
	if err == nil {
		return nil
	}
	var des form.DecodeErrors
	if !errors.As(err, &des) {
		return fmt.Errorf("bind form: %w", err)
	}
	fes := make(validation.Errors, 0, len(des))
	for field := range des {
		fes = append(fes, validation.FieldError{Field: field, Tag: "type", Detail: "invalid value for " + field})
	}
	sort.Slice(fes, func(i, j int) bool { return fes[i].Field < fes[j].Field })
	return fes
}
