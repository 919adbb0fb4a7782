package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/diewo77/stockchef/internal/models"
)

var refDay = time.Date(2025, 10, 10, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := refDay.Add(d)
	return &t
}

func TestClassify(t *testing.T) {
	day := 24 * time.Hour
	tests := []struct {
		name   string
		expiry *time.Time
		want   ExpiryStatus
	}{
		{"no expiry", nil, StatusOK},
		{"ten days ahead", at(10 * day), StatusOK},
		{"exactly three days", at(3 * day), StatusProche},
		{"three and a half days", at(3*day + 12*time.Hour), StatusOK},
		{"a bit over three days", at(3*day + time.Second), StatusOK},
		{"same instant", at(0), StatusProche},
		{"one day ago", at(-day), StatusPerime},
		{"one second ago", at(-time.Second), StatusPerime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.expiry, refDay))
		})
	}
}

func TestClassify_NilIgnoresReference(t *testing.T) {
	for _, ref := range []time.Time{{}, refDay, time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC)} {
		require.Equal(t, StatusOK, Classify(nil, ref))
	}
}

func TestClassify_Idempotent(t *testing.T) {
	exp := at(2 * 24 * time.Hour)
	first := Classify(exp, refDay)
	require.Equal(t, first, Classify(exp, refDay))
	require.Equal(t, refDay.Add(2*24*time.Hour), *exp, "Classify must not mutate its input")
}

func TestClassifyProduct(t *testing.T) {
	today := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	require.Equal(t, StatusProche, ClassifyProduct(models.Product{DatePeremption: "2025-10-15"}, today))
	require.Equal(t, StatusPerime, ClassifyProduct(models.Product{DatePeremption: "2025-10-12"}, today))
	require.Equal(t, StatusOK, ClassifyProduct(models.Product{DatePeremption: "not a date"}, today))
	require.Equal(t, StatusOK, ClassifyProduct(models.Product{}, today))
}

func TestStatusLabel(t *testing.T) {
	require.Equal(t, "Périmé", StatusPerime.Label("fr"))
	require.Equal(t, "Proche", StatusProche.Label("fr"))
	require.Equal(t, "OK", StatusOK.Label("en"))
}

func TestFixedClock(t *testing.T) {
	var c Clock = FixedClock(refDay)
	require.Equal(t, refDay, c.Now())
}

func TestSummarizeAndFilter(t *testing.T) {
	today := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	seuil := 5.0
	products := []models.Product{
		{ID: 1, Nom: "Farine", QuantiteStock: 18, DatePeremption: "2025-12-01"},
		{ID: 2, Nom: "Lait", QuantiteStock: 2, SeuilAlerte: &seuil, DatePeremption: "2025-10-14"},
		{ID: 3, Nom: "Crème", QuantiteStock: 1, DatePeremption: "2025-10-01"},
		{ID: 4, Nom: "Sel", QuantiteStock: 5, SeuilAlerte: &seuil},
	}

	s := Summarize(products, today)
	require.Equal(t, Summary{TotalProduits: 4, Perimes: 1, Proches: 1, StockBas: 2}, s)

	expiring := Filter(products, today, StatusProche, StatusPerime)
	require.Len(t, expiring, 2)
	require.Equal(t, uint(2), expiring[0].ID)
	require.Equal(t, uint(3), expiring[1].ID)

	low := LowStock(products)
	require.Len(t, low, 2)
	require.Equal(t, "Lait", low[0].Nom)
	require.Equal(t, "Sel", low[1].Nom)
}
