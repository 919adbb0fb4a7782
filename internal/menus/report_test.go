package menus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/diewo77/stockchef/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func reportMenu(id uint, date string, statut models.MenuStatus, prix, qte float64) models.Menu {
	return models.Menu{
		ID:          id,
		Nom:         "Menu " + date,
		DateService: date,
		Statut:      statut,
		Items:       []models.MenuItem{{PrixUnitaire: prix, Quantite: qte}},
	}
}

func TestBuildReport(t *testing.T) {
	list := []models.Menu{
		reportMenu(1, "2025-10-12", models.MenuConfirme, 1.9, 2),  // 3.80
		reportMenu(2, "2025-10-10", models.MenuRealise, 2.4, 2.5), // 6.00
		reportMenu(3, "2025-10-31", models.MenuBrouillon, 8.5, 1), // 8.50
		reportMenu(4, "2025-11-01", models.MenuConfirme, 1, 1),    // out of range
		reportMenu(5, "2025-10-15", models.MenuAnnule, 10, 1),     // cancelled
		reportMenu(6, "", models.MenuBrouillon, 1, 1),             // no date
		reportMenu(7, "pas une date", models.MenuBrouillon, 1, 1), // unreadable
		reportMenu(8, "2025-09-30", models.MenuRealise, 0.25, 6),  // before range
	}

	r := BuildReport(list, day("2025-10-01"), day("2025-10-31"), dec("4.5"))

	require.Len(t, r.Menus, 3)
	require.Equal(t, []uint{2, 1, 3}, []uint{r.Menus[0].ID, r.Menus[1].ID, r.Menus[2].ID})
	require.Equal(t, 6.0, r.Menus[0].Total)
	require.True(t, r.Menus[0].Depasse)
	require.Equal(t, 3.8, r.Menus[1].Total)
	require.False(t, r.Menus[1].Depasse)
	require.Equal(t, "2025-10-31", r.Menus[2].Date)
	require.Equal(t, 2, r.NbDepassements)
	require.Equal(t, 6.1, r.CoutMoyen)
}

func TestBuildReport_Empty(t *testing.T) {
	r := BuildReport(nil, day("2025-10-01"), day("2025-10-31"), dec("4.5"))
	require.NotNil(t, r.Menus)
	require.Empty(t, r.Menus)
	require.Zero(t, r.CoutMoyen)
	require.Zero(t, r.NbDepassements)
}

func TestBuildReport_ThresholdIsStrict(t *testing.T) {
	list := []models.Menu{reportMenu(1, "2025-10-10", models.MenuConfirme, 2.25, 2)}
	r := BuildReport(list, day("2025-10-10"), day("2025-10-10"), dec("4.5"))
	require.Len(t, r.Menus, 1)
	require.False(t, r.Menus[0].Depasse)
	require.Equal(t, 4.5, r.CoutMoyen)
}
