package repository

import (
	"context"
	"time"
)

// User es el Principal autenticable. El rol no cambia después de crearse.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"is_email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserRepository define operaciones sobre principals.
type UserRepository interface {
	// Create retorna ErrConflict si el email ya existe (case-insensitive).
	Create(ctx context.Context, u User) (*User, error)

	GetByID(ctx context.Context, id string) (*User, error)

	// GetByEmail retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*User, error)

	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetEmailVerified(ctx context.Context, id string) error
}

// AuthToken es un token opaco de un solo uso (refresh, reset, verify).
// Solo se persiste el hash SHA-256.
type AuthToken struct {
	ID        string
	UserID    string
	Kind      TokenKind
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// TokenRepository persiste tokens opacos.
type TokenRepository interface {
	Create(ctx context.Context, t AuthToken) error

	// Consume marca el token como usado si existe, no fue usado y no expiró.
	// Retorna ErrNotFound en cualquier otro caso.
	Consume(ctx context.Context, kind TokenKind, tokenHash string, now time.Time) (*AuthToken, error)

	// RevokeAll marca como usados todos los tokens vigentes del usuario para ese kind.
	RevokeAll(ctx context.Context, userID string, kind TokenKind, now time.Time) error
}
