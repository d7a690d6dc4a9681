package repository

import (
	"context"
	"time"
)

// Assignment vincula un trainer con un member. Un member tiene a lo sumo una
// asignación ACTIVE.
type Assignment struct {
	ID         string           `json:"id"`
	AccountID  string           `json:"account_id"`
	UserID     string           `json:"user_id"`
	BranchID   string           `json:"branch_id"`
	MemberID   string           `json:"member_id"`
	TrainerID  string           `json:"trainer_id"`
	AssignedBy string           `json:"assigned_by"`
	StartDate  time.Time        `json:"start_date"`
	EndDate    *time.Time       `json:"end_date,omitempty"`
	Status     AssignmentStatus `json:"status"`
	Notes      string           `json:"notes,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	Member  *MemberRef  `json:"member,omitempty"`
	Trainer *TrainerRef `json:"trainer,omitempty"`
	Branch  *BranchRef  `json:"branch,omitempty"`
}

type AssignmentRepository interface {
	Create(ctx context.Context, a Assignment) (*Assignment, error)
	// GetByID y List retornan Member, Trainer y Branch poblados.
	GetByID(ctx context.Context, accountID, id string) (*Assignment, error)
	List(ctx context.Context, accountID string) ([]Assignment, error)
	Update(ctx context.Context, accountID string, a Assignment) (*Assignment, error)
	Delete(ctx context.Context, accountID, id string) error

	// CurrentForMember retorna la asignación ACTIVE del member o, si no hay,
	// la más reciente.
	CurrentForMember(ctx context.Context, accountID, memberID string) (*Assignment, error)

	// CloseActive pasa la asignación ACTIVE del member (si existe) al estado
	// dado con end_date = at. Retorna cuántas filas cambió.
	CloseActive(ctx context.Context, accountID, memberID string, status AssignmentStatus, at time.Time) (int, error)
}
