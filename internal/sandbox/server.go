// Package sandbox provides an in-memory NexusAI server for local development and tests
package sandbox

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shaharia-lab/nexusctl/internal/logger"
)

// Server serves the NexusAI API and dashboard endpoints from a Store
type Server struct {
	Port   string
	store  *Store
	server *http.Server
	router *chi.Mux
	logger logger.Logger
}

// Option configures a Server
type Option func(*Server)

// WithRequestLogging enables chi's request logger on stdout
func WithRequestLogging() Option {
	return func(s *Server) {
		s.router.Use(middleware.Logger)
	}
}

// WithLogger sets the logger used for lifecycle messages
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new Server listening on port once started
func NewServer(port string, store *Store, opts ...Option) *Server {
	if store == nil {
		store = NewStore()
	}

	s := &Server{
		Port:   port,
		store:  store,
		router: chi.NewRouter(),
		logger: logger.Discard,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

// Store returns the backing store
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the router, for use with httptest
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.Recoverer)
	r.Use(s.injectFaults)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.requireKey(true))
		r.Get("/models", s.listModels)
		r.Post("/models/{id}/generate", s.generate)
		r.Get("/usage", s.getUsage)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireKey(false))
		r.Get("/payment-methods/{id}", s.listPaymentMethods)
		r.Post("/setup-automatic-payments/{id}", s.setDefaultPaymentMethod)
		r.Post("/attach-payment-method/{id}", s.attachPaymentMethod)
		r.Post("/api/setup-intent/{id}", s.createSetupIntent)
		r.Post("/api-keys", s.createAPIKey)
		r.Get("/api-keys/{id}", s.listAPIKeys)
		r.Post("/api-keys/{id}/toggle", s.toggleAPIKey)
	})
}

// Start initializes and starts the HTTP server in the background
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              ":" + s.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("sandbox server stopped: %v", err)
		}
	}()

	s.logger.Info("Sandbox server started", map[string]interface{}{"port": s.Port})
	return nil
}

// Stop gracefully shuts down the server with a timeout
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	s.logger.Info("Sandbox server stopped", nil)
	return nil
}

// Seed fills store with demo data: three models and customer "1" holding
// apiKey and two cards.
func Seed(store *Store, apiKey string) APIKey {
	store.AddModel(Model{ID: 1, Name: "nexus-small", Description: "Fast general purpose model", ModelType: "text", PricePer1KTokens: 0.002})
	store.AddModel(Model{ID: 2, Name: "nexus-large", Description: "High quality text generation", ModelType: "text", PricePer1KTokens: 0.02})
	store.AddModel(Model{ID: 3, Name: "nexus-code", Description: "Code completion", ModelType: "code", PricePer1KTokens: 0.01})

	key := store.IssueKey("1", "default", apiKey)

	store.AddPaymentMethod("1", &PaymentMethod{ID: "pm_card_visa", Card: &Card{Brand: "visa", Last4: "4242"}})
	store.AddPaymentMethod("1", &PaymentMethod{ID: "pm_card_mastercard", Card: &Card{Brand: "mastercard", Last4: "4444"}})
	_ = store.SetDefault("1", "pm_card_visa")

	return key
}
