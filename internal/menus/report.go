package menus

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/stockchef/internal/models"
)

// InRange reports whether the menu's service date lies within [from, to].
// Menus without a readable date are never in range.
func InRange(m models.Menu, from, to time.Time) bool {
	d, err := models.ParseDate(m.DateService)
	if err != nil || d == nil {
		return false
	}
	return !d.Before(from) && !d.After(to)
}

// BuildReport summarises the menus served between from and to, both days
// included. Cancelled menus are left out. Lines are ordered by service date.
func BuildReport(list []models.Menu, from, to time.Time, threshold decimal.Decimal) models.Report {
	r := models.Report{Menus: []models.ReportLine{}}
	sum := decimal.Zero
	for _, m := range list {
		if m.Statut == models.MenuAnnule || !InRange(m, from, to) {
			continue
		}
		total := Total(m.Items)
		line := models.ReportLine{
			ID:      m.ID,
			Nom:     m.Nom,
			Date:    m.DateService,
			Total:   total.Round(2).InexactFloat64(),
			Depasse: ClassifyBudget(total, threshold) == BudgetDepassement,
		}
		if line.Depasse {
			r.NbDepassements++
		}
		sum = sum.Add(total)
		r.Menus = append(r.Menus, line)
	}
	if n := len(r.Menus); n > 0 {
		r.CoutMoyen = sum.Div(decimal.NewFromInt(int64(n))).Round(2).InexactFloat64()
	}
	sort.SliceStable(r.Menus, func(i, j int) bool {
		if r.Menus[i].Date != r.Menus[j].Date {
			return r.Menus[i].Date < r.Menus[j].Date
		}
		return r.Menus[i].ID < r.Menus[j].ID
	})
	return r
}
