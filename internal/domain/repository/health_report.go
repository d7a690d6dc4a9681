package repository

import (
	"context"
	"time"
)

// Measure es un valor con unidad (cm, kg, kg/m²).
type Measure struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type MaleParameters struct {
	Chest  *float64 `json:"chest,omitempty"`
	Waist  *float64 `json:"waist,omitempty"`
	Biceps *float64 `json:"biceps,omitempty"`
	Thigh  *float64 `json:"thigh,omitempty"`
}

type FemaleParameters struct {
	Bust  *float64 `json:"bust,omitempty"`
	Waist *float64 `json:"waist,omitempty"`
	Hips  *float64 `json:"hips,omitempty"`
	Thigh *float64 `json:"thigh,omitempty"`
}

// HealthReport es una medición periódica de un member. Gender es una copia
// del member al momento de crear; BMI se deriva de Height y Weight.
type HealthReport struct {
	ID                     string            `json:"id"`
	AccountID              string            `json:"account_id"`
	UserID                 string            `json:"user_id"`
	BranchID               string            `json:"branch_id"`
	MemberID               string            `json:"member_id"`
	Gender                 Gender            `json:"gender"`
	ReportMonth            string            `json:"report_month"`
	Height                 *Measure          `json:"height"`
	Weight                 *Measure          `json:"weight"`
	BMI                    *Measure          `json:"BMI"`
	BodyFatPercentage      *float64          `json:"body_fat_percentage"`
	MuscleMass             *Measure          `json:"muscle_mass"`
	WaterPercentage        *float64          `json:"water_percentage"`
	MaleParameters         *MaleParameters   `json:"male_parameters"`
	FemaleParameters       *FemaleParameters `json:"female_parameters"`
	BloodPressureSystolic  *float64          `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *float64          `json:"blood_pressure_diastolic"`
	HeartRate              *float64          `json:"heart_rate"`
	RestingMetabolism      *float64          `json:"resting_metabolism"`
	BMR                    *float64          `json:"BMR"`
	ProgressNotes          string            `json:"progress_notes,omitempty"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`

	Member *MemberRef `json:"member,omitempty"`
}

type HealthReportRepository interface {
	Create(ctx context.Context, r HealthReport) (*HealthReport, error)
	GetByID(ctx context.Context, accountID, id string) (*HealthReport, error)

	// ListByMember retorna los reportes del member, más recientes primero,
	// con Member poblado.
	ListByMember(ctx context.Context, accountID, memberID string) ([]HealthReport, error)

	// ListForPeriod retorna los reportes del member con ese report_month y
	// creados en ese año calendario (UTC).
	ListForPeriod(ctx context.Context, accountID, memberID, month string, year int) ([]HealthReport, error)

	Update(ctx context.Context, accountID string, r HealthReport) (*HealthReport, error)
	Delete(ctx context.Context, accountID, id string) error
}
