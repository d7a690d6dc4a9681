// Package auth contiene los DTOs de /v1/auth.
package auth

import (
	"time"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// RegisterRequest es el body de POST /v1/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest sirve para logout y refresh-tokens.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest: el token viaja en la query (?token=).
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// Token es un token emitido con su vencimiento.
type Token struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type Tokens struct {
	Access  Token `json:"access"`
	Refresh Token `json:"refresh"`
}

// AuthResult es la respuesta de register, login y refresh-tokens.
type AuthResult struct {
	User   *repository.User `json:"user"`
	Tokens Tokens           `json:"tokens"`
}
