package inventory

import (
	"strings"
	"time"

	"github.com/diewo77/stockchef/internal/models"
	"github.com/diewo77/stockchef/validation"
)

// ProductRules selects the optional rules of a product form variant.
type ProductRules struct {
	RequireThreshold   bool
	RequireDescription bool
	RequireExpiry      bool
	// RejectPastExpiry refuses an expiry before Today. Ignored when Today is zero.
	RejectPastExpiry bool
	Today            time.Time
}

// SimpleRules is the quick-entry form: name, quantity, price and optional dates.
var SimpleRules = ProductRules{}

// StrictRules matches the inventory backend, which requires a threshold, a
// description and an expiry date that is not already past.
func StrictRules(today time.Time) ProductRules {
	return ProductRules{
		RequireThreshold:   true,
		RequireDescription: true,
		RequireExpiry:      true,
		RejectPastExpiry:   true,
		Today:              today,
	}
}

// ValidateProduct checks every rule and returns all violations.
func ValidateProduct(in models.ProductInput, rules ProductRules) validation.Violations {
	v, _ := checkProduct(in, rules)
	return v
}

// BuildNewProduit validates in and, when valid, returns the creation payload.
func BuildNewProduit(in models.ProductInput, rules ProductRules) (models.NewProduit, validation.Violations) {
	v, out := checkProduct(in, rules)
	if !v.Empty() {
		return models.NewProduit{}, v
	}
	return out, nil
}

func checkProduct(in models.ProductInput, rules ProductRules) (validation.Violations, models.NewProduit) {
	var v validation.Violations
	out := models.NewProduit{
		Nom:            strings.TrimSpace(in.Nom),
		Unite:          models.NormalizeUnit(in.Unite),
		Description:    strings.TrimSpace(in.Description),
		DateEntree:     strings.TrimSpace(in.DateEntree),
		DatePeremption: strings.TrimSpace(in.DatePeremption),
	}

	validation.Required("name", in.Nom, &v)
	out.QuantiteInitiale, _ = validation.NonNegative("quantity", in.Quantite, &v)
	out.PrixUnitaire, _ = validation.NonNegative("price", in.PrixUnitaire, &v)

	if rules.RequireThreshold || strings.TrimSpace(in.SeuilAlerte) != "" {
		if s, ok := validation.NonNegative("threshold", in.SeuilAlerte, &v); ok {
			out.SeuilAlerte = &s
		}
	}
	if rules.RequireDescription {
		validation.Required("description", in.Description, &v)
	}

	entry, errEntry := models.ParseDate(in.DateEntree)
	expiry, errExpiry := models.ParseDate(in.DatePeremption)
	if errEntry != nil {
		v.Add("dateEntree", "date_invalid")
	}
	if errExpiry != nil {
		v.Add("datePeremption", "date_invalid")
	}
	if entry != nil && expiry != nil && !expiry.After(*entry) {
		v.Add("datePeremption", "expiry_after_entry")
	}
	if rules.RequireExpiry && expiry == nil && errExpiry == nil {
		validation.Required("expiry", "", &v)
	}
	if rules.RejectPastExpiry && !rules.Today.IsZero() && expiry != nil && expiry.Before(startOfDay(rules.Today)) {
		v.Add("datePeremption", "expiry_in_past")
	}
	return v, out
}

// ValidateConsumption pre-checks a stock withdrawal: 0 < q <= stock. The API
// enforces the same rule; this only spares a round trip.
func ValidateConsumption(p models.Product, raw string) (float64, validation.Violations) {
	var v validation.Violations
	q, ok := validation.ParseNumber(raw)
	if !ok {
		q = 0
	}
	if !validation.PositiveFloat("consume_quantity", q, &v) {
		return 0, v
	}
	if q > p.QuantiteStock {
		v.Add("quantite", "consume_exceeds_stock")
		return 0, v
	}
	return q, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
