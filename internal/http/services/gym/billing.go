package gym

import (
	"context"
	"errors"
	"strconv"

	"github.com/dropDatabas3/gymcore/internal/audit"
	"github.com/dropDatabas3/gymcore/internal/domain/derive"
	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	dto "github.com/dropDatabas3/gymcore/internal/http/dto/gym"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/metrics"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

type SubscriptionService interface {
	Create(ctx context.Context, accountID, userID string, in dto.SubscriptionCreate) (*repository.Subscription, error)
	List(ctx context.Context, accountID string) ([]repository.Subscription, error)
	Get(ctx context.Context, accountID, id string) (*repository.Subscription, error)
	Update(ctx context.Context, accountID, id string, in dto.SubscriptionUpdate) (*repository.Subscription, error)
	Delete(ctx context.Context, accountID, id string) error
}

type subscriptionService struct{ d *Deps }

var errInvalidPlan = httperrors.ErrBadRequest.WithDetail("invalid membership plan")

// Create corre en una transacción con el member bloqueado: a lo sumo una
// suscripción ACTIVE vigente por member.
func (s *subscriptionService) Create(ctx context.Context, accountID, userID string, in dto.SubscriptionCreate) (*repository.Subscription, error) {
	log := svcLog(ctx, "gym.subscriptions", "Create").With(logger.MemberID(in.MemberID), logger.PlanID(in.PlanID))
	now := s.d.now()

	var out *repository.Subscription
	err := s.d.Store.InTx(ctx, func(tx repository.Repositories) error {
		plan, err := tx.Plans().GetByID(ctx, accountID, in.PlanID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errInvalidPlan
			}
			return err
		}
		if _, err := tx.Members().Lock(ctx, accountID, in.MemberID); err != nil {
			return notFound(err, "member")
		}
		if _, err := tx.Branches().GetByID(ctx, accountID, in.BranchID); err != nil {
			return notFound(err, "branch")
		}
		if !derive.SameAmount(*in.Amount, plan.Price) {
			metrics.SubscriptionsTotal.WithLabelValues("amount_mismatch").Inc()
			return httperrors.ErrAmountMismatch
		}
		if err := s.noOtherActive(ctx, tx, accountID, in.MemberID, ""); err != nil {
			return err
		}
		out, err = tx.Subscriptions().Create(ctx, repository.Subscription{
			AccountID:     accountID,
			UserID:        userID,
			BranchID:      in.BranchID,
			MemberID:      in.MemberID,
			PlanID:        plan.ID,
			StartDate:     now,
			EndDate:       derive.EndDate(now, plan.PlanType, plan.Duration),
			PaymentMode:   repository.PaymentMode(in.PaymentMode),
			PaymentStatus: repository.PaymentSuccess,
			TransactionID: derive.TransactionID(now),
			PaymentDate:   now,
			Amount:        derive.Round2(*in.Amount),
			Status:        repository.SubscriptionActive,
		})
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, httperrors.ErrDuplicateActiveSubscription):
			metrics.SubscriptionsTotal.WithLabelValues("duplicate").Inc()
		case !errors.Is(err, httperrors.ErrAmountMismatch):
			metrics.SubscriptionsTotal.WithLabelValues("error").Inc()
		}
		log.Debug("subscription rejected", logger.Err(err))
		return nil, err
	}
	metrics.SubscriptionsTotal.WithLabelValues("created").Inc()
	log.Info("subscription created", logger.SubscriptionID(out.ID))
	audit.Log(ctx, audit.SubscriptionCreated, audit.Actor(userID), logger.AccountID(accountID),
		logger.SubscriptionID(out.ID), logger.MemberID(out.MemberID), logger.Any("amount", out.Amount))
	return s.stamp(out), nil
}

// noOtherActive falla si el member tiene otra suscripción ACTIVE vigente.
func (s *subscriptionService) noOtherActive(ctx context.Context, tx repository.Repositories, accountID, memberID, exceptID string) error {
	active, err := tx.Subscriptions().FindActive(ctx, accountID, memberID, s.d.now())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case active.ID == exceptID:
		return nil
	default:
		return httperrors.ErrDuplicateActiveSubscription
	}
}

// stamp calcula is_expired al momento de leer.
func (s *subscriptionService) stamp(sub *repository.Subscription) *repository.Subscription {
	sub.IsExpired = sub.Expired(s.d.now())
	return sub
}

func (s *subscriptionService) List(ctx context.Context, accountID string) ([]repository.Subscription, error) {
	list, err := s.d.Store.Subscriptions().List(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		s.stamp(&list[i])
	}
	return list, nil
}

func (s *subscriptionService) Get(ctx context.Context, accountID, id string) (*repository.Subscription, error) {
	sub, err := s.d.Store.Subscriptions().GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	return s.stamp(sub), nil
}

// Update aplica solo campos del allow-list. Pasar a EXPIRED o CANCELLED
// completa la asignación ACTIVE del member en la misma transacción.
func (s *subscriptionService) Update(ctx context.Context, accountID, id string, in dto.SubscriptionUpdate) (*repository.Subscription, error) {
	log := svcLog(ctx, "gym.subscriptions", "Update").With(logger.SubscriptionID(id))
	now := s.d.now()

	var (
		out       *repository.Subscription
		cancelled bool
	)
	err := s.d.Store.InTx(ctx, func(tx repository.Repositories) error {
		sub, err := tx.Subscriptions().GetByID(ctx, accountID, id)
		if err != nil {
			return err
		}
		prev := *sub

		if in.MemberID != nil {
			sub.MemberID = *in.MemberID
		}
		if _, err := tx.Members().Lock(ctx, accountID, sub.MemberID); err != nil {
			return notFound(err, "member")
		}
		if in.BranchID != nil && *in.BranchID != sub.BranchID {
			if _, err := tx.Branches().GetByID(ctx, accountID, *in.BranchID); err != nil {
				return notFound(err, "branch")
			}
			sub.BranchID = *in.BranchID
		}
		if in.PlanID != nil {
			sub.PlanID = *in.PlanID
		}
		if in.Amount != nil {
			sub.Amount = derive.Round2(*in.Amount)
		}
		if sub.PlanID != prev.PlanID || in.Amount != nil {
			plan, err := tx.Plans().GetByID(ctx, accountID, sub.PlanID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return errInvalidPlan
				}
				return err
			}
			if !derive.SameAmount(sub.Amount, plan.Price) {
				return httperrors.ErrAmountMismatch
			}
		}
		if in.PaymentMode != nil {
			sub.PaymentMode = repository.PaymentMode(*in.PaymentMode)
		}
		if in.PaymentStatus != nil {
			sub.PaymentStatus = repository.PaymentStatus(*in.PaymentStatus)
		}
		if in.Status != nil {
			sub.Status = repository.SubscriptionStatus(*in.Status)
		}

		if sub.Status == repository.SubscriptionActive && (prev.Status != repository.SubscriptionActive || sub.MemberID != prev.MemberID) && !sub.Expired(now) {
			if err := s.noOtherActive(ctx, tx, accountID, sub.MemberID, sub.ID); err != nil {
				return err
			}
		}

		out, err = tx.Subscriptions().Update(ctx, accountID, *sub)
		if err != nil {
			return err
		}

		cancelled = sub.Status == repository.SubscriptionCancelled && prev.Status != repository.SubscriptionCancelled
		ended := sub.Status == repository.SubscriptionExpired || sub.Status == repository.SubscriptionCancelled
		if ended && prev.Status == repository.SubscriptionActive {
			n, err := tx.Assignments().CloseActive(ctx, accountID, sub.MemberID, repository.AssignmentCompleted, now)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Info("active assignment completed", logger.MemberID(sub.MemberID), logger.String("status", string(sub.Status)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if cancelled {
		audit.Log(ctx, audit.SubscriptionCancelled, logger.AccountID(accountID), logger.SubscriptionID(out.ID), logger.MemberID(out.MemberID))
	}
	return s.stamp(out), nil
}

func (s *subscriptionService) Delete(ctx context.Context, accountID, id string) error {
	return s.d.Store.Subscriptions().Delete(ctx, accountID, id)
}

type AssignmentService interface {
	// Assign desactiva la asignación ACTIVE del member (si hay) y crea la nueva.
	Assign(ctx context.Context, accountID, principalID string, in dto.AssignmentCreate) (*repository.Assignment, error)
	List(ctx context.Context, accountID string) ([]repository.Assignment, error)
	// Current retorna la asignación ACTIVE del member o la más reciente.
	Current(ctx context.Context, accountID, memberID string) (*repository.Assignment, error)
	Update(ctx context.Context, accountID, id string, in dto.AssignmentUpdate) (*repository.Assignment, error)
	Delete(ctx context.Context, accountID, id string) error
}

type assignmentService struct{ d *Deps }

func (s *assignmentService) Assign(ctx context.Context, accountID, principalID string, in dto.AssignmentCreate) (*repository.Assignment, error) {
	log := svcLog(ctx, "gym.assignments", "Assign").With(logger.MemberID(in.MemberID), logger.TrainerID(in.TrainerID))
	now := s.d.now()

	var (
		out      *repository.Assignment
		replaced int
	)
	err := s.d.Store.InTx(ctx, func(tx repository.Repositories) error {
		if _, err := tx.Members().Lock(ctx, accountID, in.MemberID); err != nil {
			return notFound(err, "member")
		}
		if _, err := tx.Trainers().GetByID(ctx, accountID, in.TrainerID); err != nil {
			return notFound(err, "trainer")
		}
		if _, err := tx.Branches().GetByID(ctx, accountID, in.BranchID); err != nil {
			return notFound(err, "branch")
		}
		n, err := tx.Assignments().CloseActive(ctx, accountID, in.MemberID, repository.AssignmentInactive, now)
		if err != nil {
			return err
		}
		replaced = n
		created, err := tx.Assignments().Create(ctx, repository.Assignment{
			AccountID:  accountID,
			UserID:     principalID,
			BranchID:   in.BranchID,
			MemberID:   in.MemberID,
			TrainerID:  in.TrainerID,
			AssignedBy: principalID,
			StartDate:  now,
			Status:     repository.AssignmentActive,
			Notes:      trim(in.Notes),
		})
		if err != nil {
			return err
		}
		out, err = tx.Assignments().GetByID(ctx, accountID, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.AssignmentsTotal.WithLabelValues(strconv.FormatBool(replaced > 0)).Inc()
	log.Info("trainer assigned", logger.ID(out.ID), logger.Bool("replaced", replaced > 0))
	return out, nil
}

func (s *assignmentService) List(ctx context.Context, accountID string) ([]repository.Assignment, error) {
	return s.d.Store.Assignments().List(ctx, accountID)
}

func (s *assignmentService) Current(ctx context.Context, accountID, memberID string) (*repository.Assignment, error) {
	return s.d.Store.Assignments().CurrentForMember(ctx, accountID, memberID)
}

func (s *assignmentService) Update(ctx context.Context, accountID, id string, in dto.AssignmentUpdate) (*repository.Assignment, error) {
	now := s.d.now()

	var out *repository.Assignment
	err := s.d.Store.InTx(ctx, func(tx repository.Repositories) error {
		a, err := tx.Assignments().GetByID(ctx, accountID, id)
		if err != nil {
			return err
		}
		prev := a.Status
		if in.Status != nil {
			a.Status = repository.AssignmentStatus(*in.Status)
		}
		if in.EndDate != nil {
			a.EndDate = in.EndDate.TimePtr()
		}
		if in.Notes != nil {
			a.Notes = trim(*in.Notes)
		}

		switch {
		case a.Status != repository.AssignmentActive && a.EndDate == nil:
			a.EndDate = &now
		case a.Status == repository.AssignmentActive && prev != repository.AssignmentActive:
			if _, err := tx.Members().Lock(ctx, accountID, a.MemberID); err != nil {
				return notFound(err, "member")
			}
			cur, err := tx.Assignments().CurrentForMember(ctx, accountID, a.MemberID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			if cur != nil && cur.ID != a.ID && cur.Status == repository.AssignmentActive {
				return httperrors.ErrConflict.WithDetail("member already has an active trainer assignment")
			}
			if in.EndDate == nil {
				a.EndDate = nil
			}
		}

		if _, err := tx.Assignments().Update(ctx, accountID, *a); err != nil {
			return err
		}
		out, err = tx.Assignments().GetByID(ctx, accountID, a.ID)
		return err
	})
	return out, err
}

func (s *assignmentService) Delete(ctx context.Context, accountID, id string) error {
	return s.d.Store.Assignments().Delete(ctx, accountID, id)
}
