package repository

import (
	"context"
	"time"
)

// Branch es una sede del tenant.
type Branch struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	UserID        string    `json:"account_user_id"`
	Name          string    `json:"name"`
	StreetAddress string    `json:"street_address"`
	City          string    `json:"city"`
	Zipcode       string    `json:"zipcode"`
	Area          string    `json:"area"`
	SpocName      string    `json:"spoc_name"`
	SpocEmail     string    `json:"spoc_email"`
	SpocContact   string    `json:"spoc_contact"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type BranchRepository interface {
	Create(ctx context.Context, b Branch) (*Branch, error)
	GetByID(ctx context.Context, accountID, id string) (*Branch, error)
	List(ctx context.Context, accountID string) ([]Branch, error)
	Update(ctx context.Context, accountID string, b Branch) (*Branch, error)
	Delete(ctx context.Context, accountID, id string) error

	// ExistsSpocEmail ignora el registro exceptID (vacío en creates).
	ExistsSpocEmail(ctx context.Context, accountID, email, exceptID string) (bool, error)
}

// BranchRef es la proyección embebida en lecturas pobladas.
type BranchRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
