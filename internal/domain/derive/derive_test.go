package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

func f(v float64) *float64 { return &v }

func TestBMI(t *testing.T) {
	got := BMI(f(180), f(81))
	require.NotNil(t, got)
	assert.Equal(t, 25.00, *got)

	got = BMI(f(165), f(60))
	require.NotNil(t, got)
	assert.Equal(t, 22.04, *got)

	assert.Nil(t, BMI(nil, f(81)))
	assert.Nil(t, BMI(f(180), nil))
	assert.Nil(t, BMI(f(0), f(81)))
}

func TestMeasures(t *testing.T) {
	h, w, bmi := Measures(f(180), f(81))
	assert.Equal(t, &repository.Measure{Value: 180, Unit: UnitCm}, h)
	assert.Equal(t, &repository.Measure{Value: 81, Unit: UnitKg}, w)
	assert.Equal(t, &repository.Measure{Value: 25, Unit: UnitBMI}, bmi)

	h, w, bmi = Measures(nil, f(81))
	assert.Nil(t, h)
	assert.NotNil(t, w)
	assert.Nil(t, bmi)
}

func TestEndDate(t *testing.T) {
	start := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		planType string
		duration int
		want     time.Time
	}{
		{"WEEKLY", 2, time.Date(2025, time.January, 29, 10, 0, 0, 0, time.UTC)},
		{"MONTHLY", 3, time.Date(2025, time.April, 15, 10, 0, 0, 0, time.UTC)},
		{"YEARLY", 1, time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)},
		{"monthly", 1, time.Date(2025, time.February, 15, 10, 0, 0, 0, time.UTC)},
		{"QUARTERLY", 5, time.Date(2025, time.February, 15, 10, 0, 0, 0, time.UTC)},
		{"", 0, time.Date(2025, time.February, 15, 10, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.planType, func(t *testing.T) {
			assert.Equal(t, tc.want, EndDate(start, tc.planType, tc.duration))
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "whey-protein-2kg", Slug("Whey Protein 2KG"))
	assert.Equal(t, "mass-gainer", Slug("  Mass \t Gainer "))
	assert.Equal(t, "creatine", Slug("Creatine"))
}

func TestGenderParameters(t *testing.T) {
	male := &repository.MaleParameters{Chest: f(100)}
	female := &repository.FemaleParameters{Bust: f(90)}

	m, fm := GenderParameters(repository.GenderFemale, male, female)
	assert.Nil(t, m)
	assert.Equal(t, female, fm)

	m, fm = GenderParameters(repository.GenderMale, male, female)
	assert.Equal(t, male, m)
	assert.Nil(t, fm)

	m, fm = GenderParameters(repository.GenderMale, nil, female)
	assert.NotNil(t, m)
	assert.Nil(t, fm)

	m, fm = GenderParameters(repository.GenderOther, male, female)
	assert.Nil(t, m)
	assert.Nil(t, fm)
}

func TestReportMonthAndTransactionID(t *testing.T) {
	ts := time.Date(2025, time.March, 3, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "March", ReportMonth(ts))
	assert.Equal(t, "TXN-1741044600000", TransactionID(ts))
}

func TestSameAmount(t *testing.T) {
	assert.True(t, SameAmount(1499.99, 1499.99))
	assert.True(t, SameAmount(0.1+0.2, 0.3))
	assert.False(t, SameAmount(1500, 1499.99))
}
