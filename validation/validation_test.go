package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	var v Violations
	require.False(t, Required("name", "   ", &v))
	require.True(t, Required("description", "ok", &v))
	require.Equal(t, []string{"name_required"}, v.Codes())
}

func TestNonNegative(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"", 0, false},
		{"  ", 0, false},
		{"0", 0, true},
		{"12.5", 12.5, true},
		{"1,9", 1.9, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var v Violations
			got, ok := NonNegative("quantity", tt.raw, &v)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
			require.Equal(t, !tt.ok, v.Has("quantity_non_negative"))
		})
	}
}

func TestPositiveFloat(t *testing.T) {
	var v Violations
	require.False(t, PositiveFloat("price", 0, &v))
	require.True(t, PositiveFloat("price", 0.01, &v))
	require.Equal(t, []string{"price_positive"}, v.Codes())
}

func TestAddDeduplicatesPerField(t *testing.T) {
	var v Violations
	v.Add("items", "each_quantity_positive")
	v.Add("items", "each_quantity_positive")
	require.Len(t, v, 1)

	v.Add("dateEntree", "date_invalid")
	v.Add("datePeremption", "date_invalid")
	v.Add("datePeremption", "date_invalid")
	require.Equal(t, []string{"each_quantity_positive", "date_invalid", "date_invalid"}, v.Codes())
}

func TestMessagesAndIntersect(t *testing.T) {
	var v Violations
	v.Add("name", "name_required")
	v.Add("items", "ingredient_required")
	require.Equal(t, []string{"Le nom est requis", "Au moins un ingrédient"}, v.Messages("fr"))

	var now Violations
	now.Add("items", "ingredient_required")
	require.Equal(t, []string{"ingredient_required"}, v.Intersect(now).Codes())
	require.True(t, v.Intersect(nil).Empty())

	var moved Violations
	moved.Add("nom", "ingredient_required")
	require.True(t, v.Intersect(moved).Empty(), "same code on another field is a different error")
}
