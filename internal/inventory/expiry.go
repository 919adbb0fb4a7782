// Package inventory holds the product-side rules: expiry classification,
// stock alerts and product form validation. Everything here is pure; callers
// pass "today" explicitly.
package inventory

import (
	"time"

	"github.com/diewo77/stockchef/i18n"
	"github.com/diewo77/stockchef/internal/models"
)

// ExpiryStatus is a product's lifecycle status relative to a reference day.
type ExpiryStatus string

const (
	StatusOK     ExpiryStatus = "OK"
	StatusProche ExpiryStatus = "PROCHE"
	StatusPerime ExpiryStatus = "PERIME"
)

// SoonDays is the inclusive horizon for StatusProche.
const SoonDays = 3.0

// Label returns the display label for s.
func (s ExpiryStatus) Label(lang string) string {
	switch s {
	case StatusProche:
		return i18n.T(lang, "status_proche")
	case StatusPerime:
		return i18n.T(lang, "status_perime")
	}
	return i18n.T(lang, "status_ok")
}

// Clock supplies the reference instant to callers that want wall time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

// FixedClock always returns the same instant. Handy in tests.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Classify maps an expiry date to a status relative to today.
// A nil expiry is OK. An expiry strictly before today is PERIME; otherwise
// the fractional day difference is compared to SoonDays, inclusive.
func Classify(expiry *time.Time, today time.Time) ExpiryStatus {
	if expiry == nil {
		return StatusOK
	}
	if expiry.Before(today) {
		return StatusPerime
	}
	diffDays := expiry.Sub(today).Hours() / 24
	if diffDays <= SoonDays {
		return StatusProche
	}
	return StatusOK
}

// ClassifyProduct classifies p's expiry date. Unparseable dates count as
// absent.
func ClassifyProduct(p models.Product, today time.Time) ExpiryStatus {
	return Classify(p.Expiry(), today)
}
