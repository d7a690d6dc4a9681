package repository

import "errors"

// Errores que retornan todas las implementaciones de Store. La capa HTTP los
// traduce a códigos del catálogo (ver internal/http/errors).
var (
	// ErrNotFound: no existe o es de otro account. Nunca se distingue.
	ErrNotFound = errors.New("not found")
	// ErrConflict: unique violado (email, username, documento) o FK en uso.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput: el store rechazó el valor (uuid mal formado, enum, check).
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable: el store no responde o ya fue cerrado.
	ErrUnavailable = errors.New("store unavailable")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
