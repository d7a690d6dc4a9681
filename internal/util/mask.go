// Package util tiene helpers chicos sin dependencias.
package util

import "strings"

// MaskEmail deja la primera letra del usuario y del dominio:
// "lisa@simpson.com" → "l…@s….com".
func MaskEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	user, dom, ok := strings.Cut(s, "@")
	if !ok || user == "" {
		return maskTail(s, 1)
	}
	if len(user) > 1 {
		user = user[:1] + "…"
	}
	parts := strings.Split(dom, ".")
	if len(parts[0]) > 1 {
		parts[0] = parts[0][:1] + "…"
	}
	return user + "@" + strings.Join(parts, ".")
}

// MaskPhone deja solo los últimos 4 dígitos: "+54 9 11 2233-4455" → "…4455".
func MaskPhone(s string) string {
	var digits []byte
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return "…" + string(digits[len(digits)-4:])
}

func maskTail(s string, keep int) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 3:
		return "***"
	}
	return s[:keep] + "…" + s[len(s)-1:]
}
