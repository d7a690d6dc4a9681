package gym

import "github.com/dropDatabas3/gymcore/internal/domain/repository"

type SubscriptionCreate struct {
	BranchID    string   `json:"branch_id" validate:"required,uuid"`
	MemberID    string   `json:"member_id" validate:"required,uuid"`
	PlanID      string   `json:"membershipplan_id" validate:"required,uuid"`
	PaymentMode string   `json:"payment_mode" validate:"required,oneof=CARD ONLINE UPI"`
	Amount      *float64 `json:"amount" validate:"required,gte=0"`
}

// SubscriptionUpdate: end_date no es editable.
type SubscriptionUpdate struct {
	BranchID      *string  `json:"branch_id" validate:"omitempty,uuid"`
	MemberID      *string  `json:"member_id" validate:"omitempty,uuid"`
	PlanID        *string  `json:"membershipplan_id" validate:"omitempty,uuid"`
	PaymentMode   *string  `json:"payment_mode" validate:"omitempty,oneof=CARD ONLINE UPI"`
	Amount        *float64 `json:"amount" validate:"omitempty,gte=0"`
	PaymentStatus *string  `json:"payment_status" validate:"omitempty,oneof=SUCCESS PENDING PAID FAILED"`
	Status        *string  `json:"status" validate:"omitempty,oneof=ACTIVE EXPIRED CANCELLED"`
}

func (u SubscriptionUpdate) Empty() bool { return emptyPatch(u) }

type AssignmentCreate struct {
	BranchID  string `json:"branch_id" validate:"required,uuid"`
	MemberID  string `json:"member_id" validate:"required,uuid"`
	TrainerID string `json:"trainer_id" validate:"required,uuid"`
	Notes     string `json:"notes" validate:"omitempty,max=1000"`
}

type AssignmentUpdate struct {
	Status  *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE COMPLETED"`
	EndDate *Date   `json:"end_date"`
	Notes   *string `json:"notes" validate:"omitempty,max=1000"`
}

func (u AssignmentUpdate) Empty() bool { return emptyPatch(u) }

// Metrics son las mediciones de un reporte. Llegan planas; el servicio arma
// height/weight/BMI con unidades y los grupos por género.
type Metrics struct {
	Height                 *float64 `json:"height" validate:"omitempty,gt=0,lte=300"`
	Weight                 *float64 `json:"weight" validate:"omitempty,gt=0,lte=500"`
	BodyFatPercentage      *float64 `json:"body_fat_percentage" validate:"omitempty,gte=0,lte=100"`
	MuscleMass             *float64 `json:"muscle_mass" validate:"omitempty,gte=0"`
	WaterPercentage        *float64 `json:"water_percentage" validate:"omitempty,gte=0,lte=100"`
	Chest                  *float64 `json:"chest" validate:"omitempty,gt=0"`
	Waist                  *float64 `json:"waist" validate:"omitempty,gt=0"`
	Biceps                 *float64 `json:"biceps" validate:"omitempty,gt=0"`
	Thigh                  *float64 `json:"thigh" validate:"omitempty,gt=0"`
	Bust                   *float64 `json:"bust" validate:"omitempty,gt=0"`
	Hips                   *float64 `json:"hips" validate:"omitempty,gt=0"`
	BloodPressureSystolic  *float64 `json:"blood_pressure_systolic" validate:"omitempty,gt=0"`
	BloodPressureDiastolic *float64 `json:"blood_pressure_diastolic" validate:"omitempty,gt=0"`
	HeartRate              *float64 `json:"heart_rate" validate:"omitempty,gt=0"`
	RestingMetabolism      *float64 `json:"resting_metabolism" validate:"omitempty,gt=0"`
	BMR                    *float64 `json:"BMR" validate:"omitempty,gt=0"`
	ProgressNotes          *string  `json:"progress_notes" validate:"omitempty,max=2000"`
}

// HealthReportCreate: gender, BMI y report_month se derivan, no se aceptan.
type HealthReportCreate struct {
	BranchID string `json:"branch_id" validate:"required,uuid"`
	MemberID string `json:"member_id" validate:"required,uuid"`
	Metrics
}

type HealthReportUpdate struct {
	Metrics
}

func (u HealthReportUpdate) Empty() bool { return emptyPatch(u.Metrics) }

// ReportPeriod agrupa los reportes de un member por mes y año.
type ReportPeriod struct {
	Year    int                       `json:"year"`
	Month   string                    `json:"month"`
	Reports []repository.HealthReport `json:"reports"`
}
