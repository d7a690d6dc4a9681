package memory

import (
	"maps"
	"slices"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// detach copia los campos puntero y slice del registro. Todo lo que entra o
// sale del state pasa por acá, así ningún caller comparte memoria con una fila.
func detach[T any](v T) T {
	switch x := any(v).(type) {
	case repository.Trainer:
		x.DOB = clonePtr(x.DOB)
		x.Specialization = slices.Clone(x.Specialization)
		x.Height, x.Weight = clonePtr(x.Height), clonePtr(x.Weight)
		return any(x).(T)
	case repository.Member:
		x.Height, x.Weight = clonePtr(x.Height), clonePtr(x.Weight)
		return any(x).(T)
	case repository.HealthReport:
		return any(copyReport(x)).(T)
	case repository.Product:
		x.Category, x.Brand = clonePtr(x.Category), clonePtr(x.Brand)
		return any(x).(T)
	case repository.Subscription:
		x.Member, x.Plan, x.Branch = clonePtr(x.Member), clonePtr(x.Plan), clonePtr(x.Branch)
		return any(x).(T)
	case repository.Assignment:
		x.EndDate = clonePtr(x.EndDate)
		x.Member, x.Branch = clonePtr(x.Member), clonePtr(x.Branch)
		if x.Trainer != nil {
			t := *x.Trainer
			t.Specialization = slices.Clone(t.Specialization)
			x.Trainer = &t
		}
		return any(x).(T)
	case repository.AuthToken:
		x.UsedAt = clonePtr(x.UsedAt)
		return any(x).(T)
	}
	return v
}

func copyReport(r repository.HealthReport) repository.HealthReport {
	r.Height, r.Weight, r.BMI, r.MuscleMass = clonePtr(r.Height), clonePtr(r.Weight), clonePtr(r.BMI), clonePtr(r.MuscleMass)
	r.BodyFatPercentage = clonePtr(r.BodyFatPercentage)
	r.WaterPercentage = clonePtr(r.WaterPercentage)
	r.BloodPressureSystolic = clonePtr(r.BloodPressureSystolic)
	r.BloodPressureDiastolic = clonePtr(r.BloodPressureDiastolic)
	r.HeartRate = clonePtr(r.HeartRate)
	r.RestingMetabolism = clonePtr(r.RestingMetabolism)
	r.BMR = clonePtr(r.BMR)
	r.Member = clonePtr(r.Member)
	if r.MaleParameters != nil {
		m := *r.MaleParameters
		m.Chest, m.Waist, m.Biceps, m.Thigh = clonePtr(m.Chest), clonePtr(m.Waist), clonePtr(m.Biceps), clonePtr(m.Thigh)
		r.MaleParameters = &m
	}
	if r.FemaleParameters != nil {
		f := *r.FemaleParameters
		f.Bust, f.Waist, f.Hips, f.Thigh = clonePtr(f.Bust), clonePtr(f.Waist), clonePtr(f.Hips), clonePtr(f.Thigh)
		r.FemaleParameters = &f
	}
	return r
}

// deepClone copia el mapa y cada registro.
func deepClone[V any](m map[string]V) map[string]V {
	out := maps.Clone(m)
	for k, v := range out {
		out[k] = detach(v)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
