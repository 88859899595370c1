// Package server wires the application together: database, services,
// handlers, routes, and the HTTP server lifecycle.
//
// This is the composition root — every dependency is assembled here, and
// each layer receives only what it needs: services get repository
// interfaces, handlers get services, nothing below the handler layer ever
// sees HTTP.
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
	"github.com/rs/cors"

	"github.com/jaehyukc/growlog/internal/auth"
	"github.com/jaehyukc/growlog/internal/config"
	"github.com/jaehyukc/growlog/internal/handler"
	"github.com/jaehyukc/growlog/internal/middleware"
	"github.com/jaehyukc/growlog/internal/repository/gormdb"
	"github.com/jaehyukc/growlog/internal/service"
)

// Server owns the router and the database handle. The database is closed
// during graceful shutdown in Start.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *gormdb.DB
}

// New connects the database, builds the dependency chain, and registers
// all routes.
//
// DEPENDENCY CHAIN:
//
//	gormdb.DB → AccountService / NoteService → handlers → routes
//	auth.Provider ───────────────────────────↗ (callback only)
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := gormdb.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	// Global middleware, in order: real client IP first so the logger sees
	// it, panic recovery outermost around the handlers.
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(cors.New(s.config.Cors).Handler)

	accounts := service.NewAccountService(s.db.Users(), s.logger)
	notes := service.NewNoteService(s.db.Notes(), s.db.Users(), s.logger)

	github := auth.NewProvider(auth.ProviderConfig{
		ClientID:     s.config.GitHub.ClientID,
		ClientSecret: s.config.GitHub.ClientSecret,
	})

	authHandler := handler.NewAuthHandler(github, accounts, s.config.FrontendURL, s.logger)
	noteHandler := handler.NewNoteHandler(notes, s.logger)
	userHandler := handler.NewUserHandler(accounts, s.logger)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	s.router.Get("/login", authHandler.HandleLogin)
	s.router.Get("/callback", authHandler.HandleCallback)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/notes/{githubId}", func(r chi.Router) {
			r.Post("/", noteHandler.HandleCreate)
			r.Get("/", noteHandler.HandleList)
			// Static segments must be registered alongside the {noteId}
			// param routes; chi matches them first.
			r.Get("/search", noteHandler.HandleSearch)
			r.Get("/count", noteHandler.HandleCount)
			r.Get("/{noteId}", noteHandler.HandleGet)
			r.Put("/{noteId}", noteHandler.HandleUpdate)
			r.Delete("/{noteId}", noteHandler.HandleDelete)
		})

		r.Route("/user/{githubId}", func(r chi.Router) {
			r.Get("/", userHandler.HandleGet)
			r.Delete("/", userHandler.HandleDelete)
		})
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         ":" + s.config.Port,
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
			slog.String("port", s.config.Port),
			slog.String("env", s.config.Environment),
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
