package repository

import (
	"context"
	"time"
)

// Trainer trabaja en una branch del tenant.
type Trainer struct {
	ID             string     `json:"id"`
	AccountID      string     `json:"account_id"`
	UserID         string     `json:"user_id"`
	BranchID       string     `json:"branch_id"`
	Name           string     `json:"name"`
	DOB            *time.Time `json:"dob,omitempty"`
	BloodGroup     string     `json:"blood_group,omitempty"`
	Gender         Gender     `json:"gender,omitempty"`
	PhoneNumber    string     `json:"phone_number"`
	Email          string     `json:"email"`
	Specialization []string   `json:"specialization"`
	Height         *float64   `json:"height,omitempty"`
	Weight         *float64   `json:"weight,omitempty"`
	Status         Status     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type TrainerRepository interface {
	Create(ctx context.Context, t Trainer) (*Trainer, error)
	GetByID(ctx context.Context, accountID, id string) (*Trainer, error)
	List(ctx context.Context, accountID string) ([]Trainer, error)
	Update(ctx context.Context, accountID string, t Trainer) (*Trainer, error)
	Delete(ctx context.Context, accountID, id string) error

	// ExistsContact reporta si otro trainer del tenant usa el email o el teléfono.
	ExistsContact(ctx context.Context, accountID, email, phone, exceptID string) (bool, error)
}

// TrainerRef es la proyección embebida en asignaciones.
type TrainerRef struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	PhoneNumber    string   `json:"phone_number"`
	Specialization []string `json:"specialization"`
}

// Member es un socio de una branch del tenant.
type Member struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	UserID      string    `json:"user_id"`
	BranchID    string    `json:"branch_id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	BloodGroup  string    `json:"blood_group,omitempty"`
	Gender      Gender    `json:"gender"`
	DOB         time.Time `json:"dob"`
	Address     string    `json:"address,omitempty"`
	Street      string    `json:"street,omitempty"`
	Area        string    `json:"area,omitempty"`
	Zipcode     string    `json:"zipcode,omitempty"`
	Height      *float64  `json:"height,omitempty"`
	Weight      *float64  `json:"weight,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MemberRepository interface {
	Create(ctx context.Context, m Member) (*Member, error)
	GetByID(ctx context.Context, accountID, id string) (*Member, error)
	List(ctx context.Context, accountID string) ([]Member, error)
	Update(ctx context.Context, accountID string, m Member) (*Member, error)
	Delete(ctx context.Context, accountID, id string) error

	ExistsPhone(ctx context.Context, accountID, phone, exceptID string) (bool, error)

	// Lock toma un lock de fila sobre el member hasta el fin de la transacción
	// en curso. Serializa las transiciones de suscripción y asignación.
	Lock(ctx context.Context, accountID, id string) (*Member, error)
}

// MemberRef es la proyección embebida en suscripciones, asignaciones y reportes.
type MemberRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}
