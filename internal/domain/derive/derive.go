// Package derive contiene los cálculos puros de campos derivados. El resultado
// se persiste para lectura, pero siempre se recalcula desde sus entradas y
// nunca se acepta del cliente.
package derive

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

const (
	UnitCm  = "cm"
	UnitKg  = "kg"
	UnitBMI = "kg/m²"
)

// BMI = weight / (height_m)², redondeado a 2 decimales. Retorna nil si falta
// alguno de los dos valores o no es positivo.
func BMI(heightCm, weightKg *float64) *float64 {
	if heightCm == nil || weightKg == nil || *heightCm <= 0 || *weightKg <= 0 {
		return nil
	}
	m := *heightCm / 100
	v := Round2(*weightKg / (m * m))
	return &v
}

// Round2 redondea a 2 decimales.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SameAmount compara importes monetarios al centavo.
func SameAmount(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}

// EndDate calcula el fin de una suscripción según el tipo de plan:
// WEEKLY suma 7·duration días, MONTHLY duration meses, YEARLY duration años.
// Cualquier otro tipo suma un mes.
func EndDate(start time.Time, planType string, duration int) time.Time {
	switch strings.ToUpper(strings.TrimSpace(planType)) {
	case "WEEKLY":
		return start.AddDate(0, 0, 7*duration)
	case "MONTHLY":
		return start.AddDate(0, duration, 0)
	case "YEARLY":
		return start.AddDate(duration, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

var whitespace = regexp.MustCompile(`\s+`)

// Slug: minúsculas, sin espacios en los extremos, cada tramo de espacios → "-".
func Slug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// GenderParameters deja poblado solo el grupo de medidas que corresponde al
// género: MALE conserva male, FEMALE conserva female, cualquier otro ninguno.
// Se aplica en cada persistencia del reporte.
func GenderParameters(g repository.Gender, male *repository.MaleParameters, female *repository.FemaleParameters) (*repository.MaleParameters, *repository.FemaleParameters) {
	switch g {
	case repository.GenderMale:
		if male == nil {
			male = &repository.MaleParameters{}
		}
		return male, nil
	case repository.GenderFemale:
		if female == nil {
			female = &repository.FemaleParameters{}
		}
		return nil, female
	default:
		return nil, nil
	}
}

// ReportMonth es el nombre del mes en inglés (UTC), ej: "March".
func ReportMonth(t time.Time) string {
	return t.UTC().Month().String()
}

// TransactionID genera el identificador de pago TXN-<unix ms>.
func TransactionID(t time.Time) string {
	return "TXN-" + strconv.FormatInt(t.UnixMilli(), 10)
}

// measure envuelve un valor opcional con su unidad.
func measure(v *float64, unit string) *repository.Measure {
	if v == nil {
		return nil
	}
	return &repository.Measure{Value: *v, Unit: unit}
}

// Measures arma height, weight y BMI con sus unidades.
func Measures(heightCm, weightKg *float64) (height, weight, bmi *repository.Measure) {
	return measure(heightCm, UnitCm), measure(weightKg, UnitKg), measure(BMI(heightCm, weightKg), UnitBMI)
}

// Kg envuelve un valor en kilogramos (muscle_mass).
func Kg(v *float64) *repository.Measure { return measure(v, UnitKg) }
