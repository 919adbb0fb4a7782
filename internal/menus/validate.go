package menus

import (
	"github.com/diewo77/stockchef/internal/models"
	"github.com/diewo77/stockchef/validation"
)

// ValidateMenu checks a menu form. At most one quantity violation is
// reported however many rows are wrong.
func ValidateMenu(nom string, items []models.MenuItem) validation.Violations {
	var v validation.Violations
	validation.Required("name", nom, &v)
	if len(items) == 0 {
		v.Add("items", "ingredient_required")
	}
	for _, it := range items {
		if !validation.PositiveFloat("each_quantity", it.Quantite, &v) {
			break
		}
	}
	return v
}
