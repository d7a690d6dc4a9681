package repository

import (
	"context"
	"time"
)

// Subscription es el pago de un member por un plan. StartDate y EndDate se
// derivan del plan al crear y no se editan después. El vencimiento es un hecho
// de lectura (EndDate < now); nunca se persiste EXPIRED automáticamente.
type Subscription struct {
	ID            string             `json:"id"`
	AccountID     string             `json:"account_id"`
	UserID        string             `json:"user_id"`
	BranchID      string             `json:"branch_id"`
	MemberID      string             `json:"member_id"`
	PlanID        string             `json:"membershipplan_id"`
	StartDate     time.Time          `json:"start_date"`
	EndDate       time.Time          `json:"end_date"`
	PaymentMode   PaymentMode        `json:"payment_mode"`
	PaymentStatus PaymentStatus      `json:"payment_status"`
	TransactionID string             `json:"transaction_id"`
	PaymentDate   time.Time          `json:"payment_date"`
	Amount        float64            `json:"amount"`
	Status        SubscriptionStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// IsExpired se calcula al leer.
	IsExpired bool       `json:"is_expired"`
	Member    *MemberRef `json:"member,omitempty"`
	Plan      *PlanRef   `json:"membershipplan,omitempty"`
	Branch    *BranchRef `json:"branch,omitempty"`
}

// Expired reporta si la suscripción venció respecto de now.
func (s Subscription) Expired(now time.Time) bool {
	return s.EndDate.Before(now)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, s Subscription) (*Subscription, error)
	// GetByID retorna la suscripción con Member, Plan y Branch poblados.
	GetByID(ctx context.Context, accountID, id string) (*Subscription, error)
	// List retorna las suscripciones con Member y Plan poblados.
	List(ctx context.Context, accountID string) ([]Subscription, error)
	Update(ctx context.Context, accountID string, s Subscription) (*Subscription, error)
	Delete(ctx context.Context, accountID, id string) error

	// FindActive busca una suscripción ACTIVE con end_date >= now para el member.
	FindActive(ctx context.Context, accountID, memberID string, now time.Time) (*Subscription, error)
}
