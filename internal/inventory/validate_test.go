package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/diewo77/stockchef/internal/models"
)

func validInput() models.ProductInput {
	return models.ProductInput{
		Nom:          "Farine",
		Quantite:     "18",
		Unite:        "kg",
		PrixUnitaire: "1.9",
	}
}

func TestValidateProduct_EmptyForm(t *testing.T) {
	v := ValidateProduct(models.ProductInput{Nom: "", Quantite: "", PrixUnitaire: ""}, SimpleRules)
	require.ElementsMatch(t,
		[]string{"name_required", "quantity_non_negative", "price_non_negative"},
		v.Codes())
	require.ElementsMatch(t,
		[]string{"Le nom est requis", "La quantité doit être ≥ 0", "Le prix doit être ≥ 0"},
		v.Messages("fr"))
}

func TestValidateProduct_ZeroIsValid(t *testing.T) {
	in := validInput()
	in.Quantite = "0"
	in.PrixUnitaire = "0"
	require.True(t, ValidateProduct(in, SimpleRules).Empty())
}

func TestValidateProduct_Numbers(t *testing.T) {
	tests := []struct {
		name     string
		quantite string
		prix     string
		want     []string
	}{
		{"negative quantity", "-1", "2", []string{"quantity_non_negative"}},
		{"negative price", "1", "-0.01", []string{"price_non_negative"}},
		{"not a number", "abc", "x", []string{"quantity_non_negative", "price_non_negative"}},
		{"blank", "  ", "", []string{"quantity_non_negative", "price_non_negative"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Quantite = tt.quantite
			in.PrixUnitaire = tt.prix
			require.ElementsMatch(t, tt.want, ValidateProduct(in, SimpleRules).Codes())
		})
	}
}

func TestValidateProduct_DateOrdering(t *testing.T) {
	in := validInput()
	in.DateEntree = "2025-10-10"
	in.DatePeremption = "2025-10-01"
	v := ValidateProduct(in, SimpleRules)
	require.Equal(t, []string{"expiry_after_entry"}, v.Codes())
	require.Equal(t, []string{"La date de péremption doit être après la date d'entrée"}, v.Messages("fr"))

	in.DatePeremption = "2025-10-10"
	require.Equal(t, []string{"expiry_after_entry"}, ValidateProduct(in, SimpleRules).Codes(), "same day is not strictly after")

	in.DatePeremption = "2025-10-11"
	require.True(t, ValidateProduct(in, SimpleRules).Empty())
}

func TestValidateProduct_DateRuleSkippedWhenOneMissing(t *testing.T) {
	in := validInput()
	in.DatePeremption = "2025-10-01"
	require.True(t, ValidateProduct(in, SimpleRules).Empty())

	in = validInput()
	in.DateEntree = "2025-10-01"
	require.True(t, ValidateProduct(in, SimpleRules).Empty())
}

func TestValidateProduct_InvalidDate(t *testing.T) {
	in := validInput()
	in.DatePeremption = "31/12/2025"
	require.Equal(t, []string{"date_invalid"}, ValidateProduct(in, SimpleRules).Codes())

	in.DateEntree = "hier"
	v := ValidateProduct(in, SimpleRules)
	require.Len(t, v, 2)
	require.Equal(t, "dateEntree", v[0].Field)
	require.Equal(t, "datePeremption", v[1].Field)
}

func TestValidateProduct_OptionalThreshold(t *testing.T) {
	in := validInput()
	in.SeuilAlerte = "-2"
	require.Equal(t, []string{"threshold_non_negative"}, ValidateProduct(in, SimpleRules).Codes())
}

func TestValidateProduct_StrictRules(t *testing.T) {
	today := time.Date(2025, 10, 10, 15, 0, 0, 0, time.UTC)

	v := ValidateProduct(models.ProductInput{}, StrictRules(today))
	require.ElementsMatch(t, []string{
		"name_required",
		"quantity_non_negative",
		"price_non_negative",
		"threshold_non_negative",
		"description_required",
		"expiry_required",
	}, v.Codes())

	in := validInput()
	in.SeuilAlerte = "2"
	in.Description = "Farine T55"
	in.DatePeremption = "2025-10-09"
	require.Equal(t, []string{"expiry_in_past"}, ValidateProduct(in, StrictRules(today)).Codes())

	in.DatePeremption = "2025-10-10"
	require.True(t, ValidateProduct(in, StrictRules(today)).Empty(), "today is not in the past")
}

func TestValidateProduct_Idempotent(t *testing.T) {
	in := models.ProductInput{Nom: " ", Quantite: "", PrixUnitaire: "-1", DateEntree: "2025-10-10", DatePeremption: "2025-10-01"}
	require.Equal(t, ValidateProduct(in, SimpleRules), ValidateProduct(in, SimpleRules))
}

func TestBuildNewProduit(t *testing.T) {
	in := validInput()
	in.Nom = "  Farine  "
	in.SeuilAlerte = "3"
	in.DatePeremption = "2025-12-01"

	p, v := BuildNewProduit(in, SimpleRules)
	require.True(t, v.Empty())
	require.Equal(t, "Farine", p.Nom)
	require.Equal(t, 18.0, p.QuantiteInitiale)
	require.Equal(t, 1.9, p.PrixUnitaire)
	require.Equal(t, models.UnitKilogramme, p.Unite)
	require.NotNil(t, p.SeuilAlerte)
	require.Equal(t, 3.0, *p.SeuilAlerte)
	require.Equal(t, "2025-12-01", p.DatePeremption)

	_, v = BuildNewProduit(models.ProductInput{}, SimpleRules)
	require.False(t, v.Empty())
}

func TestValidateConsumption(t *testing.T) {
	p := models.Product{QuantiteStock: 5}
	tests := []struct {
		raw  string
		want float64
		code string
	}{
		{"2", 2, ""},
		{"5", 5, ""},
		{"5.5", 0, "consume_exceeds_stock"},
		{"0", 0, "consume_quantity_positive"},
		{"-1", 0, "consume_quantity_positive"},
		{"", 0, "consume_quantity_positive"},
		{"abc", 0, "consume_quantity_positive"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q, v := ValidateConsumption(p, tt.raw)
			require.Equal(t, tt.want, q)
			if tt.code == "" {
				require.True(t, v.Empty())
				return
			}
			require.Equal(t, []string{tt.code}, v.Codes())
		})
	}
}
