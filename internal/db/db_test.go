package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/diewo77/stockchef/internal/config"
	"github.com/diewo77/stockchef/internal/inventory"
	"github.com/diewo77/stockchef/internal/models"
)

func openTest(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	return &config.DatabaseConfig{Driver: "sqlite", Path: "file:" + t.Name() + "?mode=memory&cache=shared"}
}

func TestConnectUnknownDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "oracle"}, false)
	require.Error(t, err)
}

func TestMigrateAndSeed(t *testing.T) {
	conn, err := Connect(*openTest(t), false)
	require.NoError(t, err)
	require.NoError(t, Migrate(conn))

	now := time.Date(2025, 10, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, Seed(conn, now))
	require.NoError(t, Seed(conn, now), "seeding twice is idempotent")

	var users []models.User
	require.NoError(t, conn.Order("id").Find(&users).Error)
	require.Len(t, users, 5)
	require.Equal(t, "developer@stockchef.local", users[0].Email)
	require.Equal(t, "ROLE_DEVELOPER", users[0].Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte(DemoPassword)))

	var produits []models.Product
	require.NoError(t, conn.Find(&produits).Error)
	require.Len(t, produits, 6)

	s := inventory.Summarize(produits, now)
	require.Equal(t, 6, s.TotalProduits)
	require.Equal(t, 1, s.Perimes)
	require.Equal(t, 2, s.Proches)
	require.Equal(t, 2, s.StockBas)
}
