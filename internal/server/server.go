package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gotodo/webapp/config"
	"github.com/gotodo/webapp/internal/db"
	"github.com/gotodo/webapp/internal/handlers"
	"github.com/gotodo/webapp/internal/services"
	"github.com/gotodo/webapp/internal/session"
	"github.com/gotodo/webapp/internal/store"
	"github.com/gotodo/webapp/internal/web"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	secret := strings.TrimSpace(cfg.SessionSecret)
	if secret == "" {
		_ = dbConn.Close()
		return nil, errors.New("SESSION_SECRET is required")
	}

	userRepo := store.NewUserRepository(dbConn)
	todoRepo := store.NewTodoRepository(dbConn)

	userService := services.NewUserService(userRepo)
	todoService := services.NewTodoService(todoRepo)

	sessions := session.NewManager(secret, userService)

	renderer, err := web.NewHTMLRenderer()
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	router := NewRouter(userService, todoService, sessions, renderer)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
	}, nil
}

// NewRouter builds the route table over the given collaborators. Split out
// from New so tests can drive the full router without a database.
func NewRouter(
	userService *services.UserService,
	todoService *services.TodoService,
	sessions *session.Manager,
	renderer web.Renderer,
) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)

	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, userService, sessions, renderer)
	handlers.TodoRouter(router, todoService, sessions, renderer)

	return router
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	slog.Info("listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
