package menus

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/stockchef/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []models.MenuItem
		want  string
	}{
		{"empty", nil, "0"},
		{"single line", []models.MenuItem{{PrixUnitaire: 1.9, Quantite: 2}}, "3.80"},
		{"two lines", []models.MenuItem{{PrixUnitaire: 1.0, Quantite: 2}, {PrixUnitaire: 2.0, Quantite: 1}}, "4.0"},
		{"no float drift", []models.MenuItem{{PrixUnitaire: 0.1, Quantite: 3}, {PrixUnitaire: 0.2, Quantite: 1}}, "0.5"},
		{"bad rows count as zero", []models.MenuItem{
			{PrixUnitaire: math.NaN(), Quantite: 2},
			{PrixUnitaire: 1.5, Quantite: math.Inf(1)},
			{PrixUnitaire: 2.25, Quantite: 2},
		}, "4.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Total(tt.items)
			require.Truef(t, got.Equal(dec(tt.want)), "Total() = %s, want %s", got, tt.want)
		})
	}
}

func TestTotal_OrderIndependent(t *testing.T) {
	a := []models.MenuItem{{PrixUnitaire: 1.0, Quantite: 2}, {PrixUnitaire: 2.0, Quantite: 1}}
	b := []models.MenuItem{a[1], a[0]}
	require.True(t, Total(a).Equal(Total(b)))
	require.True(t, Total(a).Equal(dec("4")))
}

func TestClassifyBudget(t *testing.T) {
	total := Total([]models.MenuItem{{PrixUnitaire: 1.9, Quantite: 2}})
	require.Equal(t, BudgetOK, ClassifyBudget(total, dec("4.5")))
	require.Equal(t, BudgetDepassement, ClassifyBudget(total, dec("3.0")))
	require.Equal(t, BudgetOK, ClassifyBudget(total, dec("3.80")), "equality is within budget")
	require.Equal(t, BudgetOK, ClassifyBudget(decimal.Zero, decimal.Zero))
}

func TestBudgetLabel(t *testing.T) {
	require.Equal(t, "Dépassement", BudgetDepassement.Label("fr"))
	require.Equal(t, "Budget OK", BudgetOK.Label("fr"))
}

func TestMargin(t *testing.T) {
	total := dec("3.80")
	_, ok := Margin(nil, total)
	require.False(t, ok)

	prix := 10.0
	m, ok := Margin(&prix, total)
	require.True(t, ok)
	require.True(t, m.Equal(dec("6.2")))

	pct, ok := MarginPercent(&prix, total)
	require.True(t, ok)
	require.True(t, pct.Equal(dec("62")))

	zero := 0.0
	_, ok = MarginPercent(&zero, total)
	require.False(t, ok)
}

func TestFormatEUR(t *testing.T) {
	require.Equal(t, "3,80 €", FormatEUR(dec("3.8")))
	require.Equal(t, "0,00 €", FormatEUR(decimal.Zero))
}
