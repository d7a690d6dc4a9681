package gym

import (
	"context"

	"github.com/dropDatabas3/gymcore/internal/domain/derive"
	"github.com/dropDatabas3/gymcore/internal/domain/repository"
	dto "github.com/dropDatabas3/gymcore/internal/http/dto/gym"
	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

type HealthReportService interface {
	Create(ctx context.Context, accountID, userID string, in dto.HealthReportCreate) (*repository.HealthReport, error)
	// ListByMember retorna ErrNotFound si el member no tiene reportes.
	ListByMember(ctx context.Context, accountID, memberID string) ([]repository.HealthReport, error)
	// Period agrupa los reportes del member con el mismo mes y año que id.
	Period(ctx context.Context, accountID, id string) ([]dto.ReportPeriod, error)
	Update(ctx context.Context, accountID, id string, in dto.HealthReportUpdate) (*repository.HealthReport, error)
	Delete(ctx context.Context, accountID, id string) error
}

type healthReportService struct{ d *Deps }

func value(m *repository.Measure) *float64 {
	if m == nil {
		return nil
	}
	v := m.Value
	return &v
}

func or(v, fallback *float64) *float64 {
	if v != nil {
		return v
	}
	return fallback
}

// apply mezcla las mediciones del payload sobre r y recalcula los derivados.
// Gender es el snapshot del reporte.
func apply(r *repository.HealthReport, m dto.Metrics) {
	height, weight := or(m.Height, value(r.Height)), or(m.Weight, value(r.Weight))
	r.Height, r.Weight, r.BMI = derive.Measures(height, weight)
	if m.MuscleMass != nil {
		r.MuscleMass = derive.Kg(m.MuscleMass)
	}
	r.BodyFatPercentage = or(m.BodyFatPercentage, r.BodyFatPercentage)
	r.WaterPercentage = or(m.WaterPercentage, r.WaterPercentage)
	r.BloodPressureSystolic = or(m.BloodPressureSystolic, r.BloodPressureSystolic)
	r.BloodPressureDiastolic = or(m.BloodPressureDiastolic, r.BloodPressureDiastolic)
	r.HeartRate = or(m.HeartRate, r.HeartRate)
	r.RestingMetabolism = or(m.RestingMetabolism, r.RestingMetabolism)
	r.BMR = or(m.BMR, r.BMR)
	if m.ProgressNotes != nil {
		r.ProgressNotes = trim(*m.ProgressNotes)
	}

	male := r.MaleParameters
	if male == nil {
		male = &repository.MaleParameters{}
	}
	male.Chest = or(m.Chest, male.Chest)
	male.Waist = or(m.Waist, male.Waist)
	male.Biceps = or(m.Biceps, male.Biceps)
	male.Thigh = or(m.Thigh, male.Thigh)

	female := r.FemaleParameters
	if female == nil {
		female = &repository.FemaleParameters{}
	}
	female.Bust = or(m.Bust, female.Bust)
	female.Waist = or(m.Waist, female.Waist)
	female.Hips = or(m.Hips, female.Hips)
	female.Thigh = or(m.Thigh, female.Thigh)

	r.MaleParameters, r.FemaleParameters = derive.GenderParameters(r.Gender, male, female)
}

func (s *healthReportService) Create(ctx context.Context, accountID, userID string, in dto.HealthReportCreate) (*repository.HealthReport, error) {
	member, err := s.d.Store.Members().GetByID(ctx, accountID, in.MemberID)
	if err != nil {
		return nil, notFound(err, "member")
	}
	if _, err := s.d.Store.Branches().GetByID(ctx, accountID, in.BranchID); err != nil {
		return nil, notFound(err, "branch")
	}
	now := s.d.now()
	r := repository.HealthReport{
		AccountID:   accountID,
		UserID:      userID,
		BranchID:    in.BranchID,
		MemberID:    member.ID,
		Gender:      member.Gender,
		ReportMonth: derive.ReportMonth(now),
		CreatedAt:   now,
	}
	apply(&r, in.Metrics)
	out, err := s.d.Store.HealthReports().Create(ctx, r)
	if err != nil {
		return nil, err
	}
	svcLog(ctx, "gym.health_reports", "Create").Info("health report created", logger.ID(out.ID), logger.MemberID(member.ID))
	return out, nil
}

func (s *healthReportService) ListByMember(ctx context.Context, accountID, memberID string) ([]repository.HealthReport, error) {
	list, err := s.d.Store.HealthReports().ListByMember(ctx, accountID, memberID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, repository.ErrNotFound
	}
	return list, nil
}

func (s *healthReportService) Period(ctx context.Context, accountID, id string) ([]dto.ReportPeriod, error) {
	r, err := s.d.Store.HealthReports().GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	year := r.CreatedAt.UTC().Year()
	list, err := s.d.Store.HealthReports().ListForPeriod(ctx, accountID, r.MemberID, r.ReportMonth, year)
	if err != nil {
		return nil, err
	}
	return []dto.ReportPeriod{{Year: year, Month: r.ReportMonth, Reports: list}}, nil
}

// Update nunca cambia gender, report_month ni BMI por payload.
func (s *healthReportService) Update(ctx context.Context, accountID, id string, in dto.HealthReportUpdate) (*repository.HealthReport, error) {
	r, err := s.d.Store.HealthReports().GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	apply(r, in.Metrics)
	return s.d.Store.HealthReports().Update(ctx, accountID, *r)
}

func (s *healthReportService) Delete(ctx context.Context, accountID, id string) error {
	return s.d.Store.HealthReports().Delete(ctx, accountID, id)
}
