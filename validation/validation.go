// Package validation collects form violations as (field, code) pairs.
// Codes are translated for display by the i18n package; rules never stop
// at the first failure so callers always get the full list.
package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/diewo77/stockchef/i18n"
)

// Violation is a single failed rule. Code is an i18n key.
type Violation struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// Violations keeps insertion order so rendered lists are stable.
type Violations []Violation

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records a violation unless the same field already carries code.
func (v *Violations) Add(field, code string) {
	x := Violation{Field: field, Code: code}
	if v.contains(x) {
		return
	}
	*v = append(*v, x)
}

func (v Violations) contains(x Violation) bool {
	for _, y := range v {
		if y == x {
			return true
		}
	}
	return false
}

// Has reports whether code was recorded.
func (v Violations) Has(code string) bool {
	for _, x := range v {
		if x.Code == code {
			return true
		}
	}
	return false
}

// Codes returns the recorded codes in order.
func (v Violations) Codes() []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = x.Code
	}
	return out
}

// Messages renders every violation in lang.
func (v Violations) Messages(lang string) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = i18n.T(lang, x.Code)
	}
	return out
}

// Intersect keeps the violations of v that other also reports on the same
// field.
func (v Violations) Intersect(other Violations) Violations {
	var out Violations
	for _, x := range v {
		if other.contains(x) {
			out = append(out, x)
		}
	}
	return out
}

// Basic validators. Each one derives its code from the field name.

func Required(field, value string, v *Violations) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, field+"_required")
		return false
	}
	return true
}

// NonNegative validates raw form input. An empty string is a violation and
// is never read as zero.
func NonNegative(field, raw string, v *Violations) (float64, bool) {
	n, ok := ParseNumber(raw)
	if !ok || n < 0 {
		v.Add(field, field+"_non_negative")
		return 0, false
	}
	return n, true
}

func PositiveFloat(field string, val float64, v *Violations) bool {
	if !(val > 0) || math.IsInf(val, 0) {
		v.Add(field, field+"_positive")
		return false
	}
	return true
}

// ParseNumber parses user-typed numbers. Blank, NaN and infinite inputs are
// rejected; a decimal comma is accepted.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	s = strings.Replace(s, ",", ".", 1)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
