// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It connects handlers, middleware and
// routes, and owns the lifecycle of the database connection.
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Config → server.New() opens sqldb.DB (a repository.Store)
//	Store → Topic/Article/Comment/User services → handlers → chi routes
//
// All dependencies are assembled in one place (NewWithStore/setupRoutes),
// the "composition root", instead of being scattered across packages.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/nc-news/internal/config"
	"github.com/sakif/nc-news/internal/handler"
	"github.com/sakif/nc-news/internal/middleware"
	"github.com/sakif/nc-news/internal/repository"
	"github.com/sakif/nc-news/internal/repository/sqldb"
	"github.com/sakif/nc-news/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the store. Start closes it after graceful shutdown so
// SQLite can checkpoint its WAL and release the file lock.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  repository.Store
}

// OpenStore opens the database the config points at and runs migrations.
// For SQLite files the parent directory is created if needed.
func OpenStore(ctx context.Context, cfg config.Config) (*sqldb.DB, error) {
	driver, err := sqldb.ParseDriver(cfg.DBDriver)
	if err != nil {
		return nil, err
	}

	if driver == sqldb.SQLite && cfg.DBPath != ":memory:" {
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
	}

	return sqldb.Open(ctx, driver, cfg.DSN())
}

// New opens the configured database and builds the server around it.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return NewWithStore(cfg, db, logger), nil
}

// NewWithStore builds the server around an already-open store. Tests use it
// with an in-memory SQLite database.
func NewWithStore(cfg config.Config, store repository.Store, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, e.g. for httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /api                                  → endpoint description document
//	GET    /api/topics                           → list topics
//	POST   /api/topics                           → create topic
//	GET    /api/articles                         → list articles (topic, sort_by, order, page, limit)
//	POST   /api/articles                         → create article
//	GET    /api/articles/{article_id}            → get article
//	PATCH  /api/articles/{article_id}            → vote on article
//	DELETE /api/articles/{article_id}            → delete article and its comments
//	GET    /api/articles/{article_id}/comments   → list comments, oldest first
//	POST   /api/articles/{article_id}/comments   → post comment
//	PATCH  /api/comments/{comment_id}            → vote on comment
//	DELETE /api/comments/{comment_id}            → delete comment
//	GET    /api/users                            → list users
//	GET    /api/users/{username}                 → get user
//
// MIDDLEWARE ORDER MATTERS:
// RequestID runs first so the logger can include the id; Recoverer sits
// inside the logger so a panic is still logged as a 500.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.CORS(s.config.CORSOrigin))

	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.MethodNotAllowed)

	// Services receive repository interfaces; handlers receive services.
	// The handler never touches the database and the service never touches HTTP.
	topicService := service.NewTopicService(s.store, s.logger)
	articleService := service.NewArticleService(s.store, s.store, s.logger)
	commentService := service.NewCommentService(s.store, s.store, s.logger)
	userService := service.NewUserService(s.store, s.logger)

	topics := handler.NewTopicHandler(topicService, s.logger)
	articles := handler.NewArticleHandler(articleService, commentService, s.logger)
	comments := handler.NewCommentHandler(commentService, s.logger)
	users := handler.NewUserHandler(userService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/", handler.HandleEndpoints)

		r.Get("/topics", topics.HandleList)
		r.Post("/topics", topics.HandleCreate)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articles.HandleList)
			r.Post("/", articles.HandleCreate)
			r.Get("/{article_id}", articles.HandleGet)
			r.Patch("/{article_id}", articles.HandleVote)
			r.Delete("/{article_id}", articles.HandleDelete)
			r.Get("/{article_id}/comments", articles.HandleListComments)
			r.Post("/{article_id}/comments", articles.HandleCreateComment)
		})

		r.Patch("/comments/{comment_id}", comments.HandleVote)
		r.Delete("/comments/{comment_id}", comments.HandleDelete)

		r.Get("/users", users.HandleList)
		r.Get("/users/{username}", users.HandleGet)
	})
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new HTTP connections
//  2. Wait for in-flight requests to finish (30s timeout)
//  3. Close the store (the deferred Close below)
func (s *Server) Start() error {
	defer s.store.Close()

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
			slog.String("url", fmt.Sprintf("http://localhost:%d/api", s.config.Port)),
			slog.String("driver", s.config.DBDriver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
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
