// Package superadmin expone /v1/accounts.
package superadmin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/gymcore/internal/http/dto/superadmin"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/http/helpers"
	"github.com/dropDatabas3/gymcore/internal/http/middlewares"
	svc "github.com/dropDatabas3/gymcore/internal/http/services/superadmin"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

type AccountsController struct {
	s svc.AccountService
}

func NewAccountsController(s svc.AccountService) *AccountsController {
	return &AccountsController{s: s}
}

func principalID(r *http.Request) string {
	if p := middlewares.GetPrincipal(r.Context()); p != nil {
		return p.ID
	}
	return ""
}

func fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger.From(r.Context()).Debug("accounts request failed",
		logger.Layer("controller"), logger.Component("accounts"), logger.Op(op), logger.Err(err))
	httperrors.WriteError(w, r, err)
}

func (c *AccountsController) Create(w http.ResponseWriter, r *http.Request) {
	var in superadmin.AccountCreate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	out, err := c.s.Create(r.Context(), principalID(r), in)
	if err != nil {
		fail(w, r, "create", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusCreated, "Account created successfully", out)
}

func (c *AccountsController) List(w http.ResponseWriter, r *http.Request) {
	out, err := c.s.List(r.Context(), principalID(r))
	if err != nil {
		fail(w, r, "list", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "Accounts fetched successfully", out)
}

func (c *AccountsController) Update(w http.ResponseWriter, r *http.Request) {
	var in superadmin.AccountUpdate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	out, err := c.s.Update(r.Context(), principalID(r), chi.URLParam(r, "accountId"), in)
	if err != nil {
		fail(w, r, "update", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "Account updated successfully", out)
}

func (c *AccountsController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.s.Delete(r.Context(), principalID(r), chi.URLParam(r, "accountId")); err != nil {
		fail(w, r, "delete", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "Account deleted successfully", nil)
}
