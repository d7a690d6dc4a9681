package gym

import (
	"net/http"

	dto "github.com/dropDatabas3/gymcore/internal/http/dto/gym"
	"github.com/dropDatabas3/gymcore/internal/http/helpers"
)

// ─── Branch ───

func (c *Controllers) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var in dto.BranchCreate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, uid := helpers.Scope(r)
	b, err := c.s.Branches.Create(r.Context(), acc, uid, in)
	if err != nil {
		fail(w, r, "branch.create", err)
		return
	}
	ok(w, http.StatusCreated, "Branch created successfully", b)
}

func (c *Controllers) ListBranches(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Branches.List(r.Context(), acc)
	if err != nil {
		fail(w, r, "branch.list", err)
		return
	}
	ok(w, http.StatusOK, "Branches fetched successfully", out)
}

func (c *Controllers) GetBranch(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	b, err := c.s.Branches.Get(r.Context(), acc, param(r, "branchId"))
	if err != nil {
		fail(w, r, "branch.get", err)
		return
	}
	ok(w, http.StatusOK, "Branch fetched successfully", b)
}

func (c *Controllers) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	var in dto.BranchUpdate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, _ := helpers.Scope(r)
	b, err := c.s.Branches.Update(r.Context(), acc, param(r, "branchId"), in)
	if err != nil {
		fail(w, r, "branch.update", err)
		return
	}
	ok(w, http.StatusOK, "Branch updated successfully", b)
}

func (c *Controllers) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	if err := c.s.Branches.Delete(r.Context(), acc, param(r, "branchId")); err != nil {
		fail(w, r, "branch.delete", err)
		return
	}
	ok(w, http.StatusOK, "Branch deleted successfully", nil)
}

// ─── Trainer ───

func (c *Controllers) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	var in dto.TrainerCreate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, uid := helpers.Scope(r)
	t, err := c.s.Trainers.Create(r.Context(), acc, uid, in)
	if err != nil {
		fail(w, r, "trainer.create", err)
		return
	}
	ok(w, http.StatusCreated, "Trainer created successfully", t)
}

func (c *Controllers) ListTrainers(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Trainers.List(r.Context(), acc)
	if err != nil {
		fail(w, r, "trainer.list", err)
		return
	}
	ok(w, http.StatusOK, "Trainers fetched successfully", out)
}

func (c *Controllers) GetTrainer(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	t, err := c.s.Trainers.Get(r.Context(), acc, param(r, "trainerId"))
	if err != nil {
		fail(w, r, "trainer.get", err)
		return
	}
	ok(w, http.StatusOK, "Trainer fetched successfully", t)
}

func (c *Controllers) UpdateTrainer(w http.ResponseWriter, r *http.Request) {
	var in dto.TrainerUpdate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, _ := helpers.Scope(r)
	t, err := c.s.Trainers.Update(r.Context(), acc, param(r, "trainerId"), in)
	if err != nil {
		fail(w, r, "trainer.update", err)
		return
	}
	ok(w, http.StatusOK, "Trainer updated successfully", t)
}

func (c *Controllers) DeleteTrainer(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	if err := c.s.Trainers.Delete(r.Context(), acc, param(r, "trainerId")); err != nil {
		fail(w, r, "trainer.delete", err)
		return
	}
	ok(w, http.StatusOK, "Trainer deleted successfully", nil)
}

// ─── Member ───

func (c *Controllers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var in dto.MemberCreate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, uid := helpers.Scope(r)
	m, err := c.s.Members.Create(r.Context(), acc, uid, in)
	if err != nil {
		fail(w, r, "member.create", err)
		return
	}
	ok(w, http.StatusCreated, "Member created successfully", m)
}

func (c *Controllers) ListMembers(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	out, err := c.s.Members.List(r.Context(), acc)
	if err != nil {
		fail(w, r, "member.list", err)
		return
	}
	ok(w, http.StatusOK, "Members fetched successfully", out)
}

func (c *Controllers) GetMember(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	m, err := c.s.Members.Get(r.Context(), acc, param(r, "memberId"))
	if err != nil {
		fail(w, r, "member.get", err)
		return
	}
	ok(w, http.StatusOK, "Member fetched successfully", m)
}

func (c *Controllers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var in dto.MemberUpdate
	if !helpers.BindJSON(w, r, &in) {
		return
	}
	acc, _ := helpers.Scope(r)
	m, err := c.s.Members.Update(r.Context(), acc, param(r, "memberId"), in)
	if err != nil {
		fail(w, r, "member.update", err)
		return
	}
	ok(w, http.StatusOK, "Member updated successfully", m)
}

func (c *Controllers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	acc, _ := helpers.Scope(r)
	if err := c.s.Members.Delete(r.Context(), acc, param(r, "memberId")); err != nil {
		fail(w, r, "member.delete", err)
		return
	}
	ok(w, http.StatusOK, "Member deleted successfully", nil)
}
