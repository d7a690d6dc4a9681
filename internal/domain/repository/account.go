package repository

import (
	"context"
	"time"
)

// Account es el tenant. Pertenece a un único User (UserID) y fue creado por
// un SUPERADMIN (SuperAdminID).
type Account struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	OwnerName    string    `json:"owner_name"`
	Address      string    `json:"address"`
	ContactInfo  string    `json:"contact_info"`
	SuperAdminID string    `json:"super_admin_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountRepository define operaciones sobre tenants. Las operaciones de
// administración quedan acotadas al super-admin que creó el account.
type AccountRepository interface {
	// Create retorna ErrConflict si el usuario ya tiene un account.
	Create(ctx context.Context, a Account) (*Account, error)

	// GetByUserID resuelve el tenant de un Principal.
	GetByUserID(ctx context.Context, userID string) (*Account, error)

	GetByID(ctx context.Context, superAdminID, id string) (*Account, error)
	List(ctx context.Context, superAdminID string) ([]Account, error)
	Update(ctx context.Context, superAdminID string, a Account) (*Account, error)
	Delete(ctx context.Context, superAdminID, id string) error
}
