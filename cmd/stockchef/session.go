package main

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/stockchef/auth"
	"github.com/diewo77/stockchef/internal/config"
)

// sessionStore picks where the login is kept: a SQLite key/value table when
// SESSION_DB is set, the JSON session file otherwise.
func sessionStore(cfg config.ClientConfig) (auth.Store, error) {
	if cfg.SessionDB == "" {
		return auth.NewFileStore(cfg.SessionFile), nil
	}
	conn, err := gorm.Open(sqlite.Open(cfg.SessionDB), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session db %s: %w", cfg.SessionDB, err)
	}
	store, err := auth.NewDBStore(conn)
	if err != nil {
		return nil, err
	}
	return store, nil
}
