package repository

import (
	"context"
	"time"
)

// MembershipPlan. PlanType es texto libre; WEEKLY, MONTHLY y YEARLY tienen
// semántica para el cálculo de end_date.
type MembershipPlan struct {
	ID           string       `json:"id"`
	AccountID    string       `json:"account_id"`
	UserID       string       `json:"user_id"`
	BranchID     string       `json:"branch_id"`
	PlanName     string       `json:"plan_name"`
	PlanType     string       `json:"plan_type"`
	Description  string       `json:"description,omitempty"`
	Duration     int          `json:"duration"`
	Price        float64      `json:"price"`
	DiscountType DiscountType `json:"discount_type,omitempty"`
	Discount     float64      `json:"discount"`
	Status       Status       `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type PlanRepository interface {
	Create(ctx context.Context, p MembershipPlan) (*MembershipPlan, error)
	GetByID(ctx context.Context, accountID, id string) (*MembershipPlan, error)
	List(ctx context.Context, accountID string) ([]MembershipPlan, error)
	Update(ctx context.Context, accountID string, p MembershipPlan) (*MembershipPlan, error)
	Delete(ctx context.Context, accountID, id string) error

	ExistsName(ctx context.Context, accountID, name, exceptID string) (bool, error)
}

// PlanRef es la proyección embebida en suscripciones.
type PlanRef struct {
	ID       string  `json:"id"`
	PlanName string  `json:"plan_name"`
	Duration int     `json:"duration"`
	Price    float64 `json:"price"`
}
