package web

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	"github.com/nar-resolver/internal/resolver"
	"github.com/nar-resolver/internal/store"
	"github.com/nar-resolver/internal/tagger"
	"github.com/nar-resolver/internal/web/handlers"
)

// Server exposes the resolver over HTTP.
type Server struct {
	config     *Config
	db         *sql.DB
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a web server instance over the register database.
func NewServer(config *Config) (*Server, error) {
	db, err := sql.Open("postgres", config.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(config.Database.MaxConnections)
	db.SetMaxIdleConns(config.Database.MaxConnections / 2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	registerStore, err := store.NewPostgres(db, config.Database.Table)
	if err != nil {
		return nil, err
	}

	server := &Server{config: config, db: db}
	server.setupRoutes(registerStore)

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes(registerStore *store.Postgres) {
	s.router = mux.NewRouter()

	apiHandler := &handlers.API{
		Resolver: resolver.New(registerStore, tagger.NewPostal()),
		Store:    registerStore,
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/resolve", apiHandler.Resolve).Methods("POST")
	api.HandleFunc("/addresses/{guid}", apiHandler.Address).Methods("GET")
	api.HandleFunc("/reverse", apiHandler.Reverse).Methods("GET")
	api.HandleFunc("/health", apiHandler.Health).Methods("GET")
}

// Start runs the server until an interrupt or terminate signal arrives, then
// shuts down gracefully.
func (s *Server) Start() error {
	go func() {
		log.Printf("resolver API listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return s.db.Close()
}
