// Command stockchef is the kitchen inventory command line client.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/internal/client"
	"github.com/diewo77/stockchef/internal/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log.SetFlags(0)

	store, err := sessionStore(cfg.Client)
	if err != nil {
		log.Fatalf("stockchef: %v", err)
	}
	sess := auth.NewSession(store)
	c := client.New(cfg.Client.BaseURL, sess, client.WithTimeout(cfg.Client.Timeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli{cfg: cfg, api: c, out: os.Stdout}
	if err := app.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			app.usage()
			os.Exit(2)
		}
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(os.Stderr, "session expirée, reconnectez-vous: stockchef login")
			os.Exit(1)
		}
		log.Fatalf("stockchef: %v", err)
	}
}
