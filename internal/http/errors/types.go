package errors

import (
	"fmt"
	"net/http"

	"github.com/dropDatabas3/gymcore/internal/validation"
)

// AppError es el error estándar de la API. Code y Message llegan al cliente;
// Err es la causa y solo se loguea.
type AppError struct {
	Code       string                  `json:"code"`
	Message    string                  `json:"message"`
	Detail     string                  `json:"detail,omitempty"`
	HTTPStatus int                     `json:"-"`
	Err        error                   `json:"-"`
	Fields     []validation.FieldError `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is compara por Code, así errors.Is(err, ErrNotFound) funciona con copias.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func New(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// WithDetail devuelve una COPIA con el detalle: los errores del catálogo no se mutan.
func (e *AppError) WithDetail(detail string) *AppError {
	c := *e
	c.Detail = detail
	return &c
}

// WithCause devuelve una COPIA con la causa.
func (e *AppError) WithCause(err error) *AppError {
	c := *e
	c.Err = err
	return &c
}

// WithFields devuelve una COPIA con los errores por campo.
func (e *AppError) WithFields(f []validation.FieldError) *AppError {
	c := *e
	c.Fields = f
	return &c
}

// =================================================================================
// CATÁLOGO
// =================================================================================

// 400
var (
	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "La solicitud contiene parámetros inválidos.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidJSON = &AppError{
		Code:       "INVALID_JSON",
		Message:    "El cuerpo de la solicitud no es un JSON válido.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrValidation = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Uno o más campos son inválidos.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrAmountMismatch = &AppError{
		Code:       "AMOUNT_MISMATCH",
		Message:    "El monto no coincide con el precio del plan.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidReference = &AppError{
		Code:       "INVALID_REFERENCE",
		Message:    "Una de las referencias no existe.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrInvalidFile = &AppError{
		Code:       "INVALID_FILE",
		Message:    "El archivo no es una imagen válida (jpg, jpeg o png, hasta 5 MB).",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrWeakPassword = &AppError{
		Code:       "WEAK_PASSWORD",
		Message:    "La contraseña no cumple con la política de seguridad.",
		HTTPStatus: http.StatusBadRequest,
	}

	ErrBodyTooLarge = &AppError{
		Code:       "BODY_TOO_LARGE",
		Message:    "El cuerpo de la solicitud excede el tamaño máximo permitido.",
		HTTPStatus: http.StatusRequestEntityTooLarge,
	}
)

// 401
var (
	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "No autorizado. Se requiere autenticación.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrTokenMissing = &AppError{
		Code:       "TOKEN_MISSING",
		Message:    "No se proporcionó token de autenticación.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrTokenInvalid = &AppError{
		Code:       "TOKEN_INVALID",
		Message:    "El token es inválido o expiró.",
		HTTPStatus: http.StatusUnauthorized,
	}

	ErrInvalidCredentials = &AppError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "Email o contraseña incorrectos.",
		HTTPStatus: http.StatusUnauthorized,
	}
)

// 403
var (
	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "No tiene permisos para realizar esta acción.",
		HTTPStatus: http.StatusForbidden,
	}
)

// 404 / 405
var (
	ErrNotFound = &AppError{
		Code:       "NOT_FOUND",
		Message:    "El recurso solicitado no fue encontrado.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrAccountNotFound = &AppError{
		Code:       "ACCOUNT_NOT_FOUND",
		Message:    "El usuario no tiene un account asociado.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrRouteNotFound = &AppError{
		Code:       "ROUTE_NOT_FOUND",
		Message:    "La ruta solicitada no existe.",
		HTTPStatus: http.StatusNotFound,
	}

	ErrMethodNotAllowed = &AppError{
		Code:       "METHOD_NOT_ALLOWED",
		Message:    "Método HTTP no permitido para este recurso.",
		HTTPStatus: http.StatusMethodNotAllowed,
	}
)

// 409
var (
	ErrAlreadyExists = &AppError{
		Code:       "ALREADY_EXISTS",
		Message:    "Ya existe un registro con esos datos.",
		HTTPStatus: http.StatusConflict,
	}

	ErrDuplicateActiveSubscription = &AppError{
		Code:       "DUPLICATE_ACTIVE_SUBSCRIPTION",
		Message:    "El member ya tiene una suscripción activa.",
		HTTPStatus: http.StatusConflict,
	}

	ErrConflict = &AppError{
		Code:       "CONFLICT",
		Message:    "La operación entra en conflicto con el estado actual.",
		HTTPStatus: http.StatusConflict,
	}
)

// 429
var (
	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Ha excedido el límite de solicitudes. Intente más tarde.",
		HTTPStatus: http.StatusTooManyRequests,
	}
)

// 5xx
var (
	ErrInternalServerError = &AppError{
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    "Ocurrió un error interno en el servidor.",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrUploadFailed = &AppError{
		Code:       "UPLOAD_FAILED",
		Message:    "No se pudo subir el archivo.",
		HTTPStatus: http.StatusInternalServerError,
	}

	ErrServiceUnavailable = &AppError{
		Code:       "SERVICE_UNAVAILABLE",
		Message:    "El servicio no está disponible temporalmente.",
		HTTPStatus: http.StatusServiceUnavailable,
	}
)
