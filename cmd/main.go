package main

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/desertthunder/marquee/internal/repositories"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	var db *sql.DB
	if opened, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(opened, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(opened); err == nil {
			db = opened
		} else {
			logger.Warn("database migrations failed", "error", err)
			opened.Close()
		}
	}

	var metadata services.Metadata
	if svc, err := services.NewTMDBService(config.TMDB, nil); err == nil {
		metadata = svc
	}

	var identity services.Identity
	var store services.DocumentStore
	if db != nil {
		sessions := repositories.NewSessionRepository(db)
		if svc, err := services.NewIdentityService(config.Identity, sessions, nil); err == nil {
			identity = svc
			if docs, err := services.NewDocStoreService(config.Store, svc, nil); err == nil {
				store = docs
			}
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Metadata:   metadata,
		Identity:   identity,
		Store:      store,
		DB:         db,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "marquee",
		Usage:    "Discover movies & TV shows and keep favorites in sync",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}

	if db != nil {
		db.Close()
	}
}
