// Package validation valida DTOs por struct tags (validator/v10) y traduce los
// errores a FieldErrors con el nombre JSON del campo.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dropDatabas3/gymcore/internal/domain/repository"
)

// FieldError es un error de un campo del payload.
type FieldError struct {
	Field  string `json:"field"`
	Tag    string `json:"code"`
	Detail string `json:"detail"`
}

// Errors agrupa los errores de una validación.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e {
		parts = append(parts, f.Field+": "+f.Detail)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var (
	once sync.Once
	v    *validator.Validate

	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)
)

// Validator retorna la instancia compartida (validator cachea por tipo).
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = v.RegisterValidation("bloodgroup", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			for _, g := range repository.BloodGroups {
				if s == g {
					return true
				}
			}
			return false
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phoneRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return v
}

func jsonName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct valida s. Retorna nil o Errors.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := make(Errors, 0, len(ve))
	for _, fe := range ve {
		out = append(out, FieldError{Field: fieldPath(fe), Tag: fe.Tag(), Detail: detail(fe)})
	}
	return out
}

// fieldPath quita el struct raíz y los structs embebidos sin tag:
// "HealthReportCreate.Metrics.height" → "height".
func fieldPath(fe validator.FieldError) string {
	segs := strings.Split(fe.Namespace(), ".")
	if len(segs) < 2 {
		return fe.Field()
	}
	out := make([]string, 0, len(segs)-1)
	for i, s := range segs[1:] {
		last := i == len(segs)-2
		if !last && s != "" && s[0] >= 'A' && s[0] <= 'Z' {
			continue
		}
		out = append(out, s)
	}
	return strings.Join(out, ".")
}

func detail(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without", "notblank":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid id"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "bloodgroup":
		return "must be one of: " + strings.Join(repository.BloodGroups, " ")
	case "phone":
		return "must be a valid phone number"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "datetime":
		return "must be a date with layout " + fe.Param()
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

// IsValidation reporta si err es un resultado de Struct.
func IsValidation(err error) (Errors, bool) {
	var e Errors
	ok := errors.As(err, &e)
	return e, ok
}
