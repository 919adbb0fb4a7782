// Package menus holds the menu-side rules: ingredient costing, budget
// classification, the lifecycle workflow and menu form validation.
package menus

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diewo77/stockchef/i18n"
	"github.com/diewo77/stockchef/internal/models"
)

// BudgetStatus classifies a menu cost against a threshold.
type BudgetStatus string

const (
	BudgetOK          BudgetStatus = "OK"
	BudgetDepassement BudgetStatus = "DEPASSEMENT"
)

// Label returns the display label for s.
func (s BudgetStatus) Label(lang string) string {
	if s == BudgetDepassement {
		return i18n.T(lang, "budget_depassement")
	}
	return i18n.T(lang, "budget_ok")
}

// Amount converts a float to a decimal. NaN and infinities become zero.
func Amount(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// LineCost is prixUnitaire * quantite for one item.
func LineCost(it models.MenuItem) decimal.Decimal {
	return Amount(it.PrixUnitaire).Mul(Amount(it.Quantite))
}

// Total sums the line costs. The result is exact; round only for display.
func Total(items []models.MenuItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineCost(it))
	}
	return total
}

// ClassifyBudget is DEPASSEMENT iff total > threshold.
func ClassifyBudget(total, threshold decimal.Decimal) BudgetStatus {
	if total.GreaterThan(threshold) {
		return BudgetDepassement
	}
	return BudgetOK
}

// Margin is prixVente - total. ok is false when the menu has no sale price.
func Margin(prixVente *float64, total decimal.Decimal) (margin decimal.Decimal, ok bool) {
	if prixVente == nil {
		return decimal.Zero, false
	}
	return Amount(*prixVente).Sub(total), true
}

// MarginPercent is the margin as a percentage of the sale price, rounded to
// two decimals. A zero or missing sale price yields false.
func MarginPercent(prixVente *float64, total decimal.Decimal) (decimal.Decimal, bool) {
	m, ok := Margin(prixVente, total)
	if !ok || Amount(*prixVente).IsZero() {
		return decimal.Zero, false
	}
	return m.Div(Amount(*prixVente)).Mul(decimal.NewFromInt(100)).Round(2), true
}

// FormatEUR renders an amount the French way: "3,80 €".
func FormatEUR(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1) + " €"
}
