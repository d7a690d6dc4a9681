// Package auth expone /v1/auth.
package auth

import (
	"net/http"
	"strings"

	dto "github.com/dropDatabas3/gymcore/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	"github.com/dropDatabas3/gymcore/internal/http/helpers"
	"github.com/dropDatabas3/gymcore/internal/http/middlewares"
	svc "github.com/dropDatabas3/gymcore/internal/http/services/auth"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

type Controller struct {
	s svc.Service
}

func NewController(s svc.Service) *Controller {
	return &Controller{s: s}
}

func fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger.From(r.Context()).Debug("auth request failed",
		logger.Layer("controller"), logger.Component("auth"), logger.Op(op), logger.Err(err))
	httperrors.WriteError(w, r, err)
}

func queryToken(r *http.Request) (string, error) {
	t := strings.TrimSpace(r.URL.Query().Get("token"))
	if t == "" {
		return "", httperrors.ErrTokenMissing.WithDetail("token query parameter is required")
	}
	return t, nil
}

func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	var in dto.RegisterRequest
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	res, err := c.s.Register(r.Context(), in)
	if err != nil {
		fail(w, r, "register", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusCreated, "User registered successfully", res)
}

func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var in dto.LoginRequest
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	res, err := c.s.Login(r.Context(), in)
	if err != nil {
		fail(w, r, "login", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "Login successful", res)
}

func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	var in dto.RefreshRequest
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	if err := c.s.Logout(r.Context(), in.RefreshToken); err != nil {
		fail(w, r, "logout", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "Logout successful", nil)
}

func (c *Controller) Refresh(w http.ResponseWriter, r *http.Request) {
	var in dto.RefreshRequest
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	res, err := c.s.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		fail(w, r, "refresh", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "Tokens refreshed successfully", res)
}

func (c *Controller) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in dto.ForgotPasswordRequest
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	if err := c.s.ForgotPassword(r.Context(), in.Email); err != nil {
		fail(w, r, "forgot_password", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "If the email is registered, a reset link has been sent", nil)
}

func (c *Controller) ResetPassword(w http.ResponseWriter, r *http.Request) {
	tok, err := queryToken(r)
	if err != nil {
		httperrors.WriteError(w, r, err)
		return
	}
	var in dto.ResetPasswordRequest
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	if err := c.s.ResetPassword(r.Context(), tok, in.Password); err != nil {
		fail(w, r, "reset_password", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "Password reset successfully", nil)
}

func (c *Controller) SendVerification(w http.ResponseWriter, r *http.Request) {
	p := middlewares.GetPrincipal(r.Context())
	if p == nil {
		httperrors.WriteError(w, r, httperrors.ErrUnauthorized)
		return
	}
	if err := c.s.SendVerification(r.Context(), p.ID); err != nil {
		fail(w, r, "send_verification", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "Verification email sent", nil)
}

func (c *Controller) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	tok, err := queryToken(r)
	if err != nil {
		httperrors.WriteError(w, r, err)
		return
	}
	if err := c.s.VerifyEmail(r.Context(), tok); err != nil {
		fail(w, r, "verify_email", err)
		return
	}
	httperrors.WriteJSON(w, http.StatusOK, "Email verified successfully", nil)
}
