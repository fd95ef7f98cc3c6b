// Package server wires the router, middleware, store, and handlers, and
// owns the HTTP server lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/akhalil/essam-memorial/internal/handler"
	"github.com/akhalil/essam-memorial/internal/middleware"
	"github.com/akhalil/essam-memorial/internal/repository"
	"github.com/akhalil/essam-memorial/internal/repository/postgres"
	"github.com/akhalil/essam-memorial/internal/repository/sqlite"
	"github.com/akhalil/essam-memorial/internal/service"
	"github.com/akhalil/essam-memorial/internal/timefmt"
)

// Config holds server configuration.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DatabaseURL string // Postgres connection string; empty selects SQLite
	DBPath      string // SQLite file path used when DatabaseURL is empty
	DisplayTZ   string // reference timezone for display timestamps
}

type store interface {
	repository.PrayerRepository
	Close() error
}

// Server holds the router and the store whose lifetime it manages.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     store
}

// New opens the store and assembles the full handler chain.
//
// The store is selected by configuration: a non-empty DatabaseURL means
// the external managed Postgres; otherwise the embedded SQLite file is
// used, which keeps local development free of infrastructure.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	var (
		db  store
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = postgres.New(cfg.DatabaseURL)
	} else {
		db, err = sqlite.New(cfg.DBPath)
	}
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	pageHandler, err := handler.NewPageHandler(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", pageHandler.HandlePage)

	prayerService := service.NewPrayerService(s.db, s.logger)
	formatter := timefmt.New(s.config.DisplayTZ)
	prayerHandler := handler.NewPrayerHandler(prayerService, formatter, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/prayers", prayerHandler.HandleList)
		r.Post("/prayers", prayerHandler.HandleCreate)
		r.Delete("/prayers", prayerHandler.HandleDelete)
		r.Get("/health", handler.HandleHealth)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests and closes the store.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
