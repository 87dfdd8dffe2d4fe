package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/sketchbook/internal/auth"
	"github.com/ziadkadry99/sketchbook/internal/db"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	// AdminToken guards the Admin routes; empty leaves them open.
	AdminToken string
}

// Server is the sketchbook HTTP server. Feature packages mount their
// endpoints on Router (long-lived connections), API (request/response) or
// Admin (request/response, artist only).
type Server struct {
	cfg        Config
	db         *db.DB
	router     chi.Router
	api        chi.Router
	admin      chi.Router
	httpServer *http.Server
}

// New creates a new server.
func New(cfg Config, database *db.DB) *Server {
	s := &Server{
		cfg: cfg,
		db:  database,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// WebSocket connections outlive any request timeout, so only the
	// request/response routes get one.
	s.api = r.With(middleware.Timeout(60 * time.Second))
	s.admin = s.api.With(s.AdminGuard())

	// Health check
	s.api.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}

// Router returns the root chi router.
func (s *Server) Router() chi.Router { return s.router }

// API returns the router for request/response endpoints.
func (s *Server) API() chi.Router { return s.api }

// Admin returns the request/response routes that require the admin token.
func (s *Server) Admin() chi.Router { return s.admin }

// AdminGuard returns the admin token middleware, for packages that mix
// public and artist-only endpoints under one prefix.
func (s *Server) AdminGuard() func(http.Handler) http.Handler {
	return auth.RequireToken(s.cfg.AdminToken)
}

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("sketchbook server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
