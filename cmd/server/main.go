// Command server runs the memorial prayer wall.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/akhalil/essam-memorial/internal/server"
)

func main() {
	// A local .env is a development convenience; in production the
	// variables come from the environment and the file is absent.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	templateDir, _ := filepath.Abs("web/templates")
	staticDir, _ := filepath.Abs("web/static")

	// DATABASE_URL selects the managed Postgres store. When unset, the
	// server falls back to a local SQLite file so it runs with nothing
	// provisioned. A URL that is set but unreachable fails on first use.
	databaseURL := os.Getenv("DATABASE_URL")

	dbPath := "data/memorial.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if databaseURL == "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", filepath.Dir(dbPath)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		logger.Info("DATABASE_URL not set, using local SQLite store",
			slog.String("path", dbPath))
	}

	cfg := server.Config{
		Port:        port,
		TemplateDir: templateDir,
		StaticDir:   staticDir,
		DatabaseURL: databaseURL,
		DBPath:      dbPath,
		DisplayTZ:   os.Getenv("DISPLAY_TZ"),
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
