package password

import "unicode"

type Policy struct {
	MinLength     int
	RequireLetter bool
	RequireUpper  bool
	RequireLower  bool
	RequireDigit  bool
	RequireSymbol bool
}

// DefaultPolicy: al menos 8 caracteres con una letra y un número.
var DefaultPolicy = Policy{MinLength: 8, RequireLetter: true, RequireDigit: true}

// Validate retorna los motivos de rechazo; vacío si la password cumple.
func (p Policy) Validate(s string) []string {
	var reasons []string
	if len([]rune(s)) < p.MinLength {
		reasons = append(reasons, "too_short")
	}
	var hasU, hasL, hasD, hasS bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasU = true
		case unicode.IsLower(r):
			hasL = true
		case unicode.IsDigit(r):
			hasD = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasS = true
		}
	}
	if p.RequireLetter && !hasU && !hasL {
		reasons = append(reasons, "missing_letter")
	}
	if p.RequireUpper && !hasU {
		reasons = append(reasons, "missing_upper")
	}
	if p.RequireLower && !hasL {
		reasons = append(reasons, "missing_lower")
	}
	if p.RequireDigit && !hasD {
		reasons = append(reasons, "missing_digit")
	}
	if p.RequireSymbol && !hasS {
		reasons = append(reasons, "missing_symbol")
	}
	return reasons
}
