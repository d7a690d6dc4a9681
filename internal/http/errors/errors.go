// Package errors define el catálogo de errores de la API y el envelope JSON.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	"github.com/dropDatabas3/gymcore/internal/objectstore"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
	"github.com/dropDatabas3/gymcore/internal/validation"
)

// Item es un error del array "errors" del envelope.
type Item struct {
	Code   string `json:"code"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail,omitempty"`
}

type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  []Item `json:"errors"`
}

type successEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// FromError traduce cualquier error a un AppError: errores de validación,
// sentinels de repository y de objectstore tienen su código; el resto es 500
// conservando la causa.
func FromError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	if fes, ok := validation.IsValidation(err); ok {
		return ErrValidation.WithFields(fes).WithCause(err)
	}
	switch {
	case stderrors.Is(err, repository.ErrNotFound):
		return ErrNotFound.WithCause(err)
	case stderrors.Is(err, repository.ErrConflict):
		return ErrAlreadyExists.WithCause(err)
	case stderrors.Is(err, repository.ErrInvalidInput):
		return ErrBadRequest.WithCause(err)
	case stderrors.Is(err, objectstore.ErrInvalidFile), stderrors.Is(err, objectstore.ErrTooLarge):
		return ErrInvalidFile.WithDetail(err.Error()).WithCause(err)
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, repository.ErrUnavailable):
		return ErrServiceUnavailable.WithCause(err)
	}
	return ErrInternalServerError.WithCause(err)
}

func items(e *AppError) []Item {
	if len(e.Fields) == 0 {
		return []Item{{Code: e.Code, Detail: e.Detail}}
	}
	out := make([]Item, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, Item{Code: e.Code, Field: f.Field, Detail: f.Detail})
	}
	return out
}

// WriteError escribe el envelope de error. Los 5xx se loguean con la causa
// usando el logger del request.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := FromError(err)

	if r != nil {
		log := logger.From(r.Context())
		switch {
		case appErr.HTTPStatus >= 500:
			log.Error("request error", logger.String("code", appErr.Code), logger.Err(appErr.Err))
		case appErr.Err != nil:
			log.Debug("request rejected", logger.String("code", appErr.Code), logger.Err(appErr.Err))
		}
	}

	if appErr.HTTPStatus == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") == "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, appErr.HTTPStatus, errorEnvelope{
		Status:  "error",
		Message: appErr.Message,
		Errors:  items(appErr),
	})
}

// WriteJSON escribe el envelope de éxito.
func WriteJSON(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, successEnvelope{Status: "success", Message: message, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
