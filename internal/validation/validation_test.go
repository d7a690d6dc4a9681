package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name       string   `json:"name" validate:"notblank,max=10"`
	Email      string   `json:"email" validate:"omitempty,email"`
	Phone      string   `json:"phone_number" validate:"required,phone"`
	BloodGroup string   `json:"blood_group" validate:"omitempty,bloodgroup"`
	Gender     string   `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Height     *float64 `json:"height" validate:"omitempty,gte=50,lte=300"`
}

func f(v float64) *float64 { return &v }

func TestStruct_OK(t *testing.T) {
	err := Struct(sample{Name: "Ana", Phone: "+54 11 5555-1234", BloodGroup: "AB-", Gender: "FEMALE", Height: f(170)})
	assert.NoError(t, err)
}

func TestStruct_FieldErrors(t *testing.T) {
	err := Struct(sample{Name: "   ", Email: "nope", Phone: "abc", BloodGroup: "C+", Gender: "X", Height: f(20)})
	require.Error(t, err)

	fes, ok := IsValidation(err)
	require.True(t, ok)

	byField := map[string]FieldError{}
	for _, fe := range fes {
		byField[fe.Field] = fe
	}
	assert.Equal(t, "notblank", byField["name"].Tag)
	assert.Equal(t, "must be a valid email", byField["email"].Detail)
	assert.Equal(t, "phone", byField["phone_number"].Tag)
	assert.Equal(t, "bloodgroup", byField["blood_group"].Tag)
	assert.Equal(t, "must be one of: MALE FEMALE OTHER", byField["gender"].Detail)
	assert.Equal(t, "gte", byField["height"].Tag)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestStruct_Nested(t *testing.T) {
	type inner struct {
		Chest *float64 `json:"chest" validate:"omitempty,gt=0"`
	}
	type outer struct {
		Male *inner `json:"male_parameters" validate:"omitempty"`
	}
	err := Struct(outer{Male: &inner{Chest: f(-1)}})
	fes, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "male_parameters.chest", fes[0].Field)
}

type Measures struct {
	BMR *float64 `json:"BMR" validate:"omitempty,gt=0"`
}

func TestStruct_Embedded(t *testing.T) {
	type report struct {
		Measures
	}
	err := Struct(report{Measures{BMR: f(-5)}})
	fes, ok := IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "BMR", fes[0].Field)
}
