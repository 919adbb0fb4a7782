// Package db opens the fake API database, migrates it and seeds demo data.
package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/internal/config"
	"github.com/diewo77/stockchef/internal/models"
)

// Connect opens the configured database. Postgres is retried a few times to
// let the container start.
func Connect(cfg config.DatabaseConfig, dev bool) (*gorm.DB, error) {
	gcfg := &gorm.Config{}
	if !dev {
		gcfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	switch cfg.Driver {
	case "", "sqlite":
		log.Printf("Opening sqlite database %s", cfg.Path)
		db, err := gorm.Open(sqlite.Open(cfg.DSN()), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	case "postgres":
		log.Printf("Connecting to database: host=%s port=%d dbname=%s user=%s",
			cfg.Host, cfg.Port, cfg.DBName, cfg.User)
		var (
			db  *gorm.DB
			err error
		)
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(postgres.Open(cfg.DSN()), gcfg)
			if err == nil {
				return db, nil
			}
			log.Printf("Attempt %d/5 failed, retrying...", i+1)
			time.Sleep(2 * time.Second)
		}
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
}

// Migrate runs AutoMigrate for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Menu{},
		&models.MenuItem{},
		&auth.SessionRecord{},
	)
}
