// Package gym contiene los DTOs de las entidades del tenant. Los creates se
// validan completos; los updates son patches con punteros (nil = no cambia) y
// requieren al menos un campo.
package gym

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Date acepta "2006-01-02" o RFC3339.
type Date struct {
	time.Time
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// ParseDate interpreta s con los layouts aceptados (UTC).
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return Date{t.UTC()}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// TimePtr convierte un *Date opcional.
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// emptyPatch reporta si todos los campos puntero/slice/map del patch son nil.
func emptyPatch(v any) bool {
	rv := reflect.Indirect(reflect.ValueOf(v))
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		switch f.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
			if !f.IsNil() {
				return false
			}
		}
	}
	return true
}
