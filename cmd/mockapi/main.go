package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/internal/config"
	"github.com/diewo77/stockchef/internal/db"
	"github.com/diewo77/stockchef/internal/handlers"
	"github.com/diewo77/stockchef/internal/inventory"
	"github.com/diewo77/stockchef/internal/menus"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "migrate the schema and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "seed demo accounts and stock, then exit")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	dbConn, err := db.Connect(cfg.Database, cfg.App.Dev)
	if err != nil {
		log.Fatalf("mockapi: database: %v", err)
	}
	if err := db.Migrate(dbConn); err != nil {
		log.Fatalf("mockapi: migrate: %v", err)
	}
	if *migrateOnlyFlag {
		log.Println("mockapi: schema up to date")
		return
	}

	if cfg.App.Seed || *seedOnlyFlag {
		if err := db.Seed(dbConn, time.Now()); err != nil {
			log.Fatalf("mockapi: seed: %v", err)
		}
		if *seedOnlyFlag {
			log.Println("mockapi: demo data seeded")
			return
		}
	}

	cancel, err := menus.ParseCancelPolicy(cfg.Kitchen.CancelPolicy)
	if err != nil {
		log.Fatalf("mockapi: MENU_CANCEL_POLICY: %v", err)
	}

	handler := newHandler(handlers.Deps{
		DB:              dbConn,
		Issuer:          auth.NewIssuer(cfg.Server.JWTSecret, cfg.Server.TokenTTL),
		Workflow:        menus.Workflow{Cancel: cancel},
		Clock:           inventory.SystemClock,
		BudgetThreshold: cfg.Kitchen.MenuBudgetThreshold,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Printf("mockapi: listening on :%s/api (driver=%s, cancel=%s, dev=%v)",
			cfg.Server.Port, cfg.Database.Driver, cancel, cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("mockapi: listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("mockapi: shutting down")

	ctx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("mockapi: shutdown: %v", err)
	}
	log.Println("mockapi: stopped")
}
