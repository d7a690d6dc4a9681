// Package superadmin administra los tenants (Accounts) de un SUPERADMIN.
package superadmin

import (
	"context"
	"errors"
	"strings"

	"github.com/dropDatabas3/gymcore/internal/audit"
	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	dto "github.com/dropDatabas3/gymcore/internal/http/dto/superadmin"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
	"github.com/dropDatabas3/gymcore/internal/security/password"
)

// AccountService opera sobre los accounts creados por el super-admin actuante.
type AccountService interface {
	Create(ctx context.Context, superAdminID string, in dto.AccountCreate) (*dto.AccountView, error)
	List(ctx context.Context, superAdminID string) ([]repository.Account, error)
	Update(ctx context.Context, superAdminID, id string, in dto.AccountUpdate) (*repository.Account, error)
	Delete(ctx context.Context, superAdminID, id string) error
}

// Evicter descarta el tenant cacheado de un usuario.
type Evicter interface {
	Evict(userID string)
}

type Deps struct {
	Store  repository.Store
	Policy password.Policy
	Hash   password.Params
	// Tenants es opcional.
	Tenants Evicter
}

type accountService struct {
	deps Deps
}

func NewAccountService(d Deps) AccountService {
	if d.Hash.KeyLen == 0 {
		d.Hash = password.Default
	}
	return &accountService{deps: d}
}

func (s *accountService) Create(ctx context.Context, superAdminID string, in dto.AccountCreate) (*dto.AccountView, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("superadmin.accounts"), logger.Op("Create"))

	if reasons := s.deps.Policy.Validate(in.Password); len(reasons) > 0 {
		return nil, httperrors.ErrWeakPassword.WithDetail(strings.Join(reasons, ", "))
	}
	hash, err := password.Hash(s.deps.Hash, in.Password)
	if err != nil {
		return nil, httperrors.ErrInternalServerError.WithCause(err)
	}

	var out dto.AccountView
	err = s.deps.Store.InTx(ctx, func(tx repository.Repositories) error {
		u, err := tx.Users().Create(ctx, repository.User{
			Name:         strings.TrimSpace(in.Name),
			Email:        strings.ToLower(strings.TrimSpace(in.Email)),
			PasswordHash: hash,
			Role:         repository.RoleAccountUser,
		})
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return httperrors.ErrAlreadyExists.WithDetail("email already taken")
			}
			return err
		}
		a, err := tx.Accounts().Create(ctx, repository.Account{
			UserID:       u.ID,
			OwnerName:    strings.TrimSpace(in.OwnerName),
			Address:      in.Address,
			ContactInfo:  in.ContactInfo,
			SuperAdminID: superAdminID,
		})
		if err != nil {
			return err
		}
		out = dto.AccountView{Account: *a, User: u}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("account created", logger.AccountID(out.ID), logger.UserID(out.UserID))
	audit.Log(ctx, audit.AccountCreated, audit.Actor(superAdminID), logger.AccountID(out.ID), logger.Email(in.Email))
	return &out, nil
}

func (s *accountService) List(ctx context.Context, superAdminID string) ([]repository.Account, error) {
	return s.deps.Store.Accounts().List(ctx, superAdminID)
}

func (s *accountService) Update(ctx context.Context, superAdminID, id string, in dto.AccountUpdate) (*repository.Account, error) {
	a, err := s.deps.Store.Accounts().GetByID(ctx, superAdminID, id)
	if err != nil {
		return nil, err
	}
	if in.OwnerName != nil {
		a.OwnerName = strings.TrimSpace(*in.OwnerName)
	}
	if in.Address != nil {
		a.Address = *in.Address
	}
	if in.ContactInfo != nil {
		a.ContactInfo = *in.ContactInfo
	}
	out, err := s.deps.Store.Accounts().Update(ctx, superAdminID, *a)
	if err != nil {
		return nil, err
	}
	s.evict(out.UserID)
	audit.Log(ctx, audit.AccountUpdated, audit.Actor(superAdminID), logger.AccountID(out.ID))
	return out, nil
}

func (s *accountService) Delete(ctx context.Context, superAdminID, id string) error {
	a, err := s.deps.Store.Accounts().GetByID(ctx, superAdminID, id)
	if err != nil {
		return err
	}
	if err := s.deps.Store.Accounts().Delete(ctx, superAdminID, id); err != nil {
		return err
	}
	s.evict(a.UserID)
	logger.From(ctx).Info("account deleted", logger.Layer("service"), logger.Component("superadmin.accounts"), logger.AccountID(id))
	audit.Log(ctx, audit.AccountDeleted, audit.Actor(superAdminID), logger.AccountID(id))
	return nil
}

func (s *accountService) evict(userID string) {
	if s.deps.Tenants != nil {
		s.deps.Tenants.Evict(userID)
	}
}
