package pg

import (
	"context"
	"time"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// ─── subscriptions ───

type subscriptionRepo struct{ q querier }

const subscriptionCols = `id, account_id, user_id, branch_id, member_id, membershipplan_id, start_date, end_date,
	payment_mode, payment_status, transaction_id, payment_date, amount, status, created_at, updated_at`

const subscriptionJoined = `
	SELECT s.id, s.account_id, s.user_id, s.branch_id, s.member_id, s.membershipplan_id, s.start_date, s.end_date,
		s.payment_mode, s.payment_status, s.transaction_id, s.payment_date, s.amount, s.status, s.created_at, s.updated_at,
		m.id::text, m.name, m.phone_number,
		pl.id::text, pl.plan_name, pl.duration, pl.price,
		b.id::text, b.name
	FROM subscriptions s
	LEFT JOIN members m ON m.id = s.member_id AND m.account_id = s.account_id
	LEFT JOIN membership_plans pl ON pl.id = s.membershipplan_id AND pl.account_id = s.account_id
	LEFT JOIN branches b ON b.id = s.branch_id AND b.account_id = s.account_id`

func subscriptionDest(s *repository.Subscription) []any {
	return []any{&s.ID, &s.AccountID, &s.UserID, &s.BranchID, &s.MemberID, &s.PlanID, &s.StartDate, &s.EndDate,
		&s.PaymentMode, &s.PaymentStatus, &s.TransactionID, &s.PaymentDate, &s.Amount, &s.Status, &s.CreatedAt, &s.UpdatedAt}
}

func scanSubscription(sc scanner) (repository.Subscription, error) {
	var s repository.Subscription
	err := sc.Scan(subscriptionDest(&s)...)
	return s, err
}

// scanSubscriptionJoined puebla Member y Plan; Branch solo si withBranch.
func scanSubscriptionJoined(withBranch bool) func(scanner) (repository.Subscription, error) {
	return func(sc scanner) (repository.Subscription, error) {
		var (
			s                    repository.Subscription
			memberID, memberName *string
			memberPhone          *string
			planID, planName     *string
			planDuration         *int
			planPrice            *float64
			branchID, branchName *string
		)
		dest := append(subscriptionDest(&s),
			&memberID, &memberName, &memberPhone,
			&planID, &planName, &planDuration, &planPrice,
			&branchID, &branchName)
		if err := sc.Scan(dest...); err != nil {
			return s, err
		}
		if memberID != nil {
			s.Member = &repository.MemberRef{ID: *memberID, Name: deref(memberName), PhoneNumber: deref(memberPhone)}
		}
		if planID != nil {
			s.Plan = &repository.PlanRef{ID: *planID, PlanName: deref(planName)}
			if planDuration != nil {
				s.Plan.Duration = *planDuration
			}
			if planPrice != nil {
				s.Plan.Price = *planPrice
			}
		}
		if withBranch && branchID != nil {
			s.Branch = &repository.BranchRef{ID: *branchID, Name: deref(branchName)}
		}
		return s, nil
	}
}

func (r subscriptionRepo) Create(ctx context.Context, s repository.Subscription) (*repository.Subscription, error) {
	s.ID = newID(s.ID)
	s.Member, s.Plan, s.Branch, s.IsExpired = nil, nil, nil, false
	now := nowUTC()
	s.CreatedAt, s.UpdatedAt = now, now
	_, err := r.q.Exec(ctx, `
		INSERT INTO subscriptions (`+subscriptionCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.AccountID, s.UserID, s.BranchID, s.MemberID, s.PlanID, s.StartDate, s.EndDate,
		s.PaymentMode, s.PaymentStatus, s.TransactionID, s.PaymentDate, s.Amount, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return nil, wrap("create subscription", err)
	}
	return &s, nil
}

func (r subscriptionRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Subscription, error) {
	if !scopedIDs(accountID, id) {
		return nil, repository.ErrNotFound
	}
	s, err := scanSubscriptionJoined(true)(r.q.QueryRow(ctx,
		subscriptionJoined+` WHERE s.id = $1 AND s.account_id = $2`, id, accountID))
	if err != nil {
		return nil, wrap("get subscription", err)
	}
	return &s, nil
}

func (r subscriptionRepo) List(ctx context.Context, accountID string) ([]repository.Subscription, error) {
	if !scopedIDs(accountID) {
		return []repository.Subscription{}, nil
	}
	rows, err := r.q.Query(ctx, subscriptionJoined+` WHERE s.account_id = $1 ORDER BY s.created_at DESC`, accountID)
	if err != nil {
		return nil, wrap("list subscriptions", err)
	}
	out, err := collect(rows, scanSubscriptionJoined(false))
	return out, wrap("list subscriptions", err)
}

func (r subscriptionRepo) Update(ctx context.Context, accountID string, s repository.Subscription) (*repository.Subscription, error) {
	if !scopedIDs(accountID, s.ID) {
		return nil, repository.ErrNotFound
	}
	out, err := scanSubscription(r.q.QueryRow(ctx, `
		UPDATE subscriptions SET branch_id = $3, member_id = $4, membershipplan_id = $5, start_date = $6,
			end_date = $7, payment_mode = $8, payment_status = $9, transaction_id = $10, payment_date = $11,
			amount = $12, status = $13, updated_at = $14
		WHERE id = $1 AND account_id = $2
		RETURNING `+subscriptionCols,
		s.ID, accountID, s.BranchID, s.MemberID, s.PlanID, s.StartDate,
		s.EndDate, s.PaymentMode, s.PaymentStatus, s.TransactionID, s.PaymentDate,
		s.Amount, s.Status, nowUTC()))
	if err != nil {
		return nil, wrap("update subscription", err)
	}
	return &out, nil
}

func (r subscriptionRepo) Delete(ctx context.Context, accountID, id string) error {
	if !scopedIDs(accountID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1 AND account_id = $2`, id, accountID)
	return affected(tag, err, "delete subscription")
}

func (r subscriptionRepo) FindActive(ctx context.Context, accountID, memberID string, now time.Time) (*repository.Subscription, error) {
	if !scopedIDs(accountID, memberID) {
		return nil, repository.ErrNotFound
	}
	s, err := scanSubscription(r.q.QueryRow(ctx, `
		SELECT `+subscriptionCols+` FROM subscriptions
		WHERE account_id = $1 AND member_id = $2 AND status = 'ACTIVE' AND end_date >= $3
		ORDER BY created_at DESC LIMIT 1`,
		accountID, memberID, now))
	if err != nil {
		return nil, wrap("find active subscription", err)
	}
	return &s, nil
}

// ─── assignments ───

type assignmentRepo struct{ q querier }

const assignmentCols = `id, account_id, user_id, branch_id, member_id, trainer_id, assigned_by,
	start_date, end_date, status, notes, created_at, updated_at`

const assignmentJoined = `
	SELECT a.id, a.account_id, a.user_id, a.branch_id, a.member_id, a.trainer_id, a.assigned_by,
		a.start_date, a.end_date, a.status, a.notes, a.created_at, a.updated_at,
		m.id::text, m.name, m.phone_number,
		t.id::text, t.name, t.phone_number, t.specialization,
		b.id::text, b.name
	FROM trainer_assignments a
	LEFT JOIN members m ON m.id = a.member_id AND m.account_id = a.account_id
	LEFT JOIN trainers t ON t.id = a.trainer_id AND t.account_id = a.account_id
	LEFT JOIN branches b ON b.id = a.branch_id AND b.account_id = a.account_id`

func scanAssignmentJoined(sc scanner) (repository.Assignment, error) {
	var (
		a                      repository.Assignment
		memberID, memberName   *string
		memberPhone            *string
		trainerID, trainerName *string
		trainerPhone           *string
		trainerSpecs           []string
		branchID, branchName   *string
	)
	err := sc.Scan(&a.ID, &a.AccountID, &a.UserID, &a.BranchID, &a.MemberID, &a.TrainerID, &a.AssignedBy,
		&a.StartDate, &a.EndDate, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		&memberID, &memberName, &memberPhone,
		&trainerID, &trainerName, &trainerPhone, &trainerSpecs,
		&branchID, &branchName)
	if err != nil {
		return a, err
	}
	if memberID != nil {
		a.Member = &repository.MemberRef{ID: *memberID, Name: deref(memberName), PhoneNumber: deref(memberPhone)}
	}
	if trainerID != nil {
		a.Trainer = &repository.TrainerRef{ID: *trainerID, Name: deref(trainerName), PhoneNumber: deref(trainerPhone), Specialization: specs(trainerSpecs)}
	}
	if branchID != nil {
		a.Branch = &repository.BranchRef{ID: *branchID, Name: deref(branchName)}
	}
	return a, nil
}

func (r assignmentRepo) Create(ctx context.Context, a repository.Assignment) (*repository.Assignment, error) {
	a.ID = newID(a.ID)
	now := nowUTC()
	_, err := r.q.Exec(ctx, `
		INSERT INTO trainer_assignments (`+assignmentCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		a.ID, a.AccountID, a.UserID, a.BranchID, a.MemberID, a.TrainerID, a.AssignedBy,
		a.StartDate, a.EndDate, a.Status, a.Notes, now, now)
	if err != nil {
		return nil, wrap("create assignment", err)
	}
	return r.GetByID(ctx, a.AccountID, a.ID)
}

func (r assignmentRepo) GetByID(ctx context.Context, accountID, id string) (*repository.Assignment, error) {
	if !scopedIDs(accountID, id) {
		return nil, repository.ErrNotFound
	}
	a, err := scanAssignmentJoined(r.q.QueryRow(ctx,
		assignmentJoined+` WHERE a.id = $1 AND a.account_id = $2`, id, accountID))
	if err != nil {
		return nil, wrap("get assignment", err)
	}
	return &a, nil
}

func (r assignmentRepo) List(ctx context.Context, accountID string) ([]repository.Assignment, error) {
	if !scopedIDs(accountID) {
		return []repository.Assignment{}, nil
	}
	rows, err := r.q.Query(ctx, assignmentJoined+` WHERE a.account_id = $1 ORDER BY a.created_at DESC`, accountID)
	if err != nil {
		return nil, wrap("list assignments", err)
	}
	out, err := collect(rows, scanAssignmentJoined)
	return out, wrap("list assignments", err)
}

func (r assignmentRepo) Update(ctx context.Context, accountID string, a repository.Assignment) (*repository.Assignment, error) {
	if !scopedIDs(accountID, a.ID) {
		return nil, repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE trainer_assignments SET branch_id = $3, member_id = $4, trainer_id = $5, assigned_by = $6,
			start_date = $7, end_date = $8, status = $9, notes = $10, updated_at = $11
		WHERE id = $1 AND account_id = $2`,
		a.ID, accountID, a.BranchID, a.MemberID, a.TrainerID, a.AssignedBy,
		a.StartDate, a.EndDate, a.Status, a.Notes, nowUTC())
	if err := affected(tag, err, "update assignment"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, accountID, a.ID)
}

func (r assignmentRepo) Delete(ctx context.Context, accountID, id string) error {
	if !scopedIDs(accountID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM trainer_assignments WHERE id = $1 AND account_id = $2`, id, accountID)
	return affected(tag, err, "delete assignment")
}

func (r assignmentRepo) CurrentForMember(ctx context.Context, accountID, memberID string) (*repository.Assignment, error) {
	if !scopedIDs(accountID, memberID) {
		return nil, repository.ErrNotFound
	}
	a, err := scanAssignmentJoined(r.q.QueryRow(ctx, assignmentJoined+`
		WHERE a.account_id = $1 AND a.member_id = $2
		ORDER BY (a.status = 'ACTIVE') DESC, a.created_at DESC
		LIMIT 1`, accountID, memberID))
	if err != nil {
		return nil, wrap("current assignment", err)
	}
	return &a, nil
}

func (r assignmentRepo) CloseActive(ctx context.Context, accountID, memberID string, status repository.AssignmentStatus, at time.Time) (int, error) {
	if !scopedIDs(accountID, memberID) {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE trainer_assignments SET status = $3, end_date = $4, updated_at = $5
		WHERE account_id = $1 AND member_id = $2 AND status = 'ACTIVE'`,
		accountID, memberID, status, at, nowUTC())
	if err != nil {
		return 0, wrap("close active assignment", err)
	}
	return int(tag.RowsAffected()), nil
}

// ─── health reports ───

type healthReportRepo struct{ q querier }

// Las medidas con unidad y los parámetros por género se guardan como JSONB.
const reportCols = `id, account_id, user_id, branch_id, member_id, gender, report_month,
	height, weight, bmi, body_fat_percentage, muscle_mass, water_percentage,
	male_parameters, female_parameters, blood_pressure_systolic, blood_pressure_diastolic,
	heart_rate, resting_metabolism, bmr, progress_notes, created_at, updated_at`

func reportDest(h *repository.HealthReport) []any {
	return []any{&h.ID, &h.AccountID, &h.UserID, &h.BranchID, &h.MemberID, &h.Gender, &h.ReportMonth,
		&h.Height, &h.Weight, &h.BMI, &h.BodyFatPercentage, &h.MuscleMass, &h.WaterPercentage,
		&h.MaleParameters, &h.FemaleParameters, &h.BloodPressureSystolic, &h.BloodPressureDiastolic,
		&h.HeartRate, &h.RestingMetabolism, &h.BMR, &h.ProgressNotes, &h.CreatedAt, &h.UpdatedAt}
}

func scanReport(sc scanner) (repository.HealthReport, error) {
	var h repository.HealthReport
	err := sc.Scan(reportDest(&h)...)
	return h, err
}

func scanReportJoined(sc scanner) (repository.HealthReport, error) {
	var (
		h                    repository.HealthReport
		memberID, memberName *string
		memberPhone          *string
	)
	if err := sc.Scan(append(reportDest(&h), &memberID, &memberName, &memberPhone)...); err != nil {
		return h, err
	}
	if memberID != nil {
		h.Member = &repository.MemberRef{ID: *memberID, Name: deref(memberName), PhoneNumber: deref(memberPhone)}
	}
	return h, nil
}

const reportJoined = `
	SELECT h.id, h.account_id, h.user_id, h.branch_id, h.member_id, h.gender, h.report_month,
		h.height, h.weight, h.bmi, h.body_fat_percentage, h.muscle_mass, h.water_percentage,
		h.male_parameters, h.female_parameters, h.blood_pressure_systolic, h.blood_pressure_diastolic,
		h.heart_rate, h.resting_metabolism, h.bmr, h.progress_notes, h.created_at, h.updated_at,
		m.id::text, m.name, m.phone_number
	FROM health_reports h
	LEFT JOIN members m ON m.id = h.member_id AND m.account_id = h.account_id`

func reportArgs(h repository.HealthReport) []any {
	return []any{h.Height, h.Weight, h.BMI, h.BodyFatPercentage, h.MuscleMass, h.WaterPercentage,
		h.MaleParameters, h.FemaleParameters, h.BloodPressureSystolic, h.BloodPressureDiastolic,
		h.HeartRate, h.RestingMetabolism, h.BMR, h.ProgressNotes}
}

func (r healthReportRepo) Create(ctx context.Context, h repository.HealthReport) (*repository.HealthReport, error) {
	h.ID = newID(h.ID)
	h.Member = nil
	now := nowUTC()
	h.CreatedAt, h.UpdatedAt = now, now
	args := append([]any{h.ID, h.AccountID, h.UserID, h.BranchID, h.MemberID, h.Gender, h.ReportMonth}, reportArgs(h)...)
	args = append(args, h.CreatedAt, h.UpdatedAt)
	_, err := r.q.Exec(ctx, `
		INSERT INTO health_reports (`+reportCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		args...)
	if err != nil {
		return nil, wrap("create health report", err)
	}
	return &h, nil
}

func (r healthReportRepo) GetByID(ctx context.Context, accountID, id string) (*repository.HealthReport, error) {
	if !scopedIDs(accountID, id) {
		return nil, repository.ErrNotFound
	}
	h, err := scanReportJoined(r.q.QueryRow(ctx, reportJoined+` WHERE h.id = $1 AND h.account_id = $2`, id, accountID))
	if err != nil {
		return nil, wrap("get health report", err)
	}
	return &h, nil
}

func (r healthReportRepo) ListByMember(ctx context.Context, accountID, memberID string) ([]repository.HealthReport, error) {
	if !scopedIDs(accountID, memberID) {
		return []repository.HealthReport{}, nil
	}
	rows, err := r.q.Query(ctx, reportJoined+`
		WHERE h.account_id = $1 AND h.member_id = $2 ORDER BY h.created_at DESC`, accountID, memberID)
	if err != nil {
		return nil, wrap("list health reports", err)
	}
	out, err := collect(rows, scanReportJoined)
	return out, wrap("list health reports", err)
}

func (r healthReportRepo) ListForPeriod(ctx context.Context, accountID, memberID, month string, year int) ([]repository.HealthReport, error) {
	if !scopedIDs(accountID, memberID) {
		return []repository.HealthReport{}, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT `+reportCols+` FROM health_reports
		WHERE account_id = $1 AND member_id = $2 AND report_month = $3
		  AND EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC') = $4
		ORDER BY created_at DESC`,
		accountID, memberID, month, year)
	if err != nil {
		return nil, wrap("list health reports for period", err)
	}
	out, err := collect(rows, scanReport)
	return out, wrap("list health reports for period", err)
}

func (r healthReportRepo) Update(ctx context.Context, accountID string, h repository.HealthReport) (*repository.HealthReport, error) {
	if !scopedIDs(accountID, h.ID) {
		return nil, repository.ErrNotFound
	}
	args := append([]any{h.ID, accountID, h.BranchID, h.MemberID, h.Gender, h.ReportMonth}, reportArgs(h)...)
	args = append(args, nowUTC())
	tag, err := r.q.Exec(ctx, `
		UPDATE health_reports SET branch_id = $3, member_id = $4, gender = $5, report_month = $6,
			height = $7, weight = $8, bmi = $9, body_fat_percentage = $10, muscle_mass = $11,
			water_percentage = $12, male_parameters = $13, female_parameters = $14,
			blood_pressure_systolic = $15, blood_pressure_diastolic = $16, heart_rate = $17,
			resting_metabolism = $18, bmr = $19, progress_notes = $20, updated_at = $21
		WHERE id = $1 AND account_id = $2`,
		args...)
	if err := affected(tag, err, "update health report"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, accountID, h.ID)
}

func (r healthReportRepo) Delete(ctx context.Context, accountID, id string) error {
	if !scopedIDs(accountID, id) {
		return repository.ErrNotFound
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM health_reports WHERE id = $1 AND account_id = $2`, id, accountID)
	return affected(tag, err, "delete health report")
}
