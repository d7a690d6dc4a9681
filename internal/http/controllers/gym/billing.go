package gym

import (
	"net/http"
	"strings"

	httperrors "github.com/dropDatabas3/gymcore/internal/http/errors"
	dto "github.com/dropDatabas3/gymcore/internal/http/dto/gym"
	"github.com/dropDatabas3/gymcore/internal/http/helpers"
	"github.com/dropDatabas3/gymcore/internal/validation"
)

// ─── Subscription ───

func (c *Controllers) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var in dto.SubscriptionCreate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, uid := helpers.Scope(r)
	s, err := c.s.Subscriptions.Create(r.Context(), acc, uid, in)
	if err != nil {
		fail(w, r, "subscription.create", err)
		return
	}
	ok(w, http.StatusCreated, "Subscription created successfully", s)
}

func (c *Controllers) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Subscriptions.List(r.Context(), acc)
	if err != nil {
		fail(w, r, "subscription.list", err)
		return
	}
	ok(w, http.StatusOK, "Subscriptions fetched successfully", out)
}

func (c *Controllers) GetSubscription(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	s, err := c.s.Subscriptions.Get(r.Context(), acc, param(r, "subscriptionId"))
	if err != nil {
		fail(w, r, "subscription.get", err)
		return
	}
	ok(w, http.StatusOK, "Subscription fetched successfully", s)
}

func (c *Controllers) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	var in dto.SubscriptionUpdate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, _ := helpers.Scope(r)
	s, err := c.s.Subscriptions.Update(r.Context(), acc, param(r, "subscriptionId"), in)
	if err != nil {
		fail(w, r, "subscription.update", err)
		return
	}
	ok(w, http.StatusOK, "Subscription updated successfully", s)
}

func (c *Controllers) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	if err := c.s.Subscriptions.Delete(r.Context(), acc, param(r, "subscriptionId")); err != nil {
		fail(w, r, "subscription.delete", err)
		return
	}
	ok(w, http.StatusOK, "Subscription deleted successfully", nil)
}

// ─── Trainer assignment ───

func (c *Controllers) AssignTrainer(w http.ResponseWriter, r *http.Request) {
	var in dto.AssignmentCreate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, uid := helpers.Scope(r)
	a, err := c.s.Assignments.Assign(r.Context(), acc, uid, in)
	if err != nil {
		fail(w, r, "assignment.assign", err)
		return
	}
	ok(w, http.StatusCreated, "Trainer assigned successfully", a)
}

func (c *Controllers) ListAssignments(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Assignments.List(r.Context(), acc)
	if err != nil {
		fail(w, r, "assignment.list", err)
		return
	}
	ok(w, http.StatusOK, "Assigned trainers fetched successfully", out)
}

func (c *Controllers) CurrentAssignment(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	a, err := c.s.Assignments.Current(r.Context(), acc, param(r, "memberId"))
	if err != nil {
		fail(w, r, "assignment.current", err)
		return
	}
	ok(w, http.StatusOK, "Assigned trainer fetched successfully", a)
}

func (c *Controllers) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	var in dto.AssignmentUpdate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, _ := helpers.Scope(r)
	a, err := c.s.Assignments.Update(r.Context(), acc, param(r, "assignmentId"), in)
	if err != nil {
		fail(w, r, "assignment.update", err)
		return
	}
	ok(w, http.StatusOK, "Assignment updated successfully", a)
}

func (c *Controllers) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	if err := c.s.Assignments.Delete(r.Context(), acc, param(r, "assignmentId")); err != nil {
		fail(w, r, "assignment.delete", err)
		return
	}
	ok(w, http.StatusOK, "Assignment deleted successfully", nil)
}

// ─── Health report ───

func (c *Controllers) CreateHealthReport(w http.ResponseWriter, r *http.Request) {
	var in dto.HealthReportCreate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, uid := helpers.Scope(r)
	h, err := c.s.HealthReports.Create(r.Context(), acc, uid, in)
	if err != nil {
		fail(w, r, "health_report.create", err)
		return
	}
	ok(w, http.StatusCreated, "Health report created successfully", h)
}

func (c *Controllers) ListHealthReports(w http.ResponseWriter, r *http.Request) {
	memberID := strings.TrimSpace(r.URL.Query().Get("member_id"))
	if memberID == "" {
		httperrors.WriteError(w, r, validation.Errors{{Field: "member_id", Tag: "required", Detail: "member_id is required"}})
		return
	}
	acc, _ := helpers.Scope(r)
	out, err := c.s.HealthReports.ListByMember(r.Context(), acc, memberID)
	if err != nil {
		fail(w, r, "health_report.list", err)
		return
	}
	ok(w, http.StatusOK, "Health reports fetched successfully", out)
}

func (c *Controllers) GetHealthReport(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.HealthReports.Period(r.Context(), acc, param(r, "reportId"))
	if err != nil {
		fail(w, r, "health_report.get", err)
		return
	}
	ok(w, http.StatusOK, "Health reports fetched successfully", out)
}

func (c *Controllers) UpdateHealthReport(w http.ResponseWriter, r *http.Request) {
	var in dto.HealthReportUpdate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, _ := helpers.Scope(r)
	h, err := c.s.HealthReports.Update(r.Context(), acc, param(r, "reportId"), in)
	if err != nil {
		fail(w, r, "health_report.update", err)
		return
	}
	ok(w, http.StatusOK, "Health report updated successfully", h)
}

func (c *Controllers) DeleteHealthReport(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	if err := c.s.HealthReports.Delete(r.Context(), acc, param(r, "reportId")); err != nil {
		fail(w, r, "health_report.delete", err)
		return
	}
	ok(w, http.StatusOK, "Health report deleted successfully", nil)
}
