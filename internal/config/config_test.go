package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "MENU_BUDGET_THRESHOLD", "DASHBOARD_BUDGET_THRESHOLD", "MENU_CANCEL_POLICY", "API_BASE_URL", "SESSION_DB"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Server.Port != "8090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN() != "stockchef.db" {
		t.Errorf("db = %+v", cfg.Database)
	}
	if cfg.Kitchen.MenuBudgetThreshold != 4.5 || cfg.Kitchen.DashboardBudgetThreshold != 15.0 {
		t.Errorf("thresholds = %+v", cfg.Kitchen)
	}
	if cfg.Kitchen.CancelPolicy != "annule" {
		t.Errorf("cancel policy = %q", cfg.Kitchen.CancelPolicy)
	}
	if cfg.Server.TokenTTL != 24*time.Hour {
		t.Errorf("ttl = %v", cfg.Server.TokenTTL)
	}
	if cfg.Client.SessionDB != "" {
		t.Errorf("session db = %q", cfg.Client.SessionDB)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MENU_BUDGET_THRESHOLD", "6,25")
	t.Setenv("DASHBOARD_BUDGET_THRESHOLD", "nope")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("API_BASE_URL", "http://api.local/api/")
	t.Setenv("SEED", "no")
	t.Setenv("SESSION_DB", "/tmp/stockchef-session.db")

	cfg := Load()
	if cfg.Kitchen.MenuBudgetThreshold != 6.25 {
		t.Errorf("menu threshold = %v", cfg.Kitchen.MenuBudgetThreshold)
	}
	if cfg.Kitchen.DashboardBudgetThreshold != 15.0 {
		t.Errorf("bad float should keep default, got %v", cfg.Kitchen.DashboardBudgetThreshold)
	}
	want := "host=db port=5432 user=stockchef password=stockchef dbname=stockchef sslmode=disable"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("DSN = %q", got)
	}
	if cfg.Client.SessionDB != "/tmp/stockchef-session.db" {
		t.Errorf("session db = %q", cfg.Client.SessionDB)
	}
	if cfg.Client.BaseURL != "http://api.local/api" {
		t.Errorf("base url = %q", cfg.Client.BaseURL)
	}
	if cfg.App.Seed {
		t.Error("SEED=no should disable seeding")
	}
}
