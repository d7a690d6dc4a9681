// Package helpers contiene utilidades compartidas por los controllers:
// decodificación y validación de bodies, form-data y acceso al scope del request.
package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/http/middlewares"
	"github.com/dropDatabas3/gymcore/internal/validation"
)

// MaxJSONBody limita los bodies JSON.
const MaxJSONBody = 1 << 20

// Patch es un DTO de update que sabe si vino vacío.
type Patch interface {
	Empty() bool
}

var errEmptyPatch = httperrors.ErrValidation.WithDetail("at least one field must be provided")

// DecodeJSON decodifica el body en dst. Campos desconocidos se ignoran.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBody)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return httperrors.ErrBodyTooLarge
		case errors.Is(err, io.EOF):
			return httperrors.ErrInvalidJSON.WithDetail("empty body")
		default:
			return httperrors.ErrInvalidJSON.WithDetail(err.Error())
		}
	}
	return nil
}

// Check valida dst y, si es un patch, exige al menos un campo.
func Check(dst any) error {
	if err := validation.Struct(dst); err != nil {
		return err
	}
	if p, ok := dst.(Patch); ok && p.Empty() {
		return errEmptyPatch
	}
	return nil
}

// IsEmptyPatch reporta si err es el rechazo de Check por patch vacío.
func IsEmptyPatch(err error) bool {
	var ae *httperrors.AppError
	return errors.As(err, &ae) && ae.Code == errEmptyPatch.Code && ae.Detail == errEmptyPatch.Detail
}

// BindJSON decodifica y valida. Ante error escribe la respuesta y retorna false.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := DecodeJSON(w, r, dst); err != nil {
		httperrors.WriteError(w, r, err)
		return false
	}
	if err := Check(dst); err != nil {
		httperrors.WriteError(w, r, err)
		return false
	}
	return true
}

// IsMultipart reporta si el request es multipart/form-data.
func IsMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}

// Scope retorna el account del tenant y el principal. RequireAuth y
// RequireTenant garantizan ambos en las rutas del tenant.
func Scope(r *http.Request) (accountID, userID string) {
	if a := middlewares.GetAccount(r.Context()); a != nil {
		accountID = a.ID
	}
	if p := middlewares.GetPrincipal(r.Context()); p != nil {
		userID = p.ID
	}
	return accountID, userID
}
