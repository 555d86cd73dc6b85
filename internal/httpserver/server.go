// Package httpserver exposes the tool catalog and dispatcher over HTTP
// for deployments where stdio or a unix socket is not practical.
package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/redditmcp/reddit-mcp/internal/tools/redditsearch"
)

// Config holds the HTTP transport settings. An empty Token leaves the
// endpoints open; set one to require a bearer token.
type Config struct {
	Addr  string
	Token string
}

type Server struct {
	cfg        Config
	router     *chi.Mux
	dispatcher *redditsearch.Dispatcher
}

func New(cfg Config, dispatcher *redditsearch.Dispatcher) *Server {
	s := &Server{
		cfg:        cfg,
		router:     chi.NewRouter(),
		dispatcher: dispatcher,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/mcp", func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/tools", s.handleListTools)
		r.Post("/call", s.handleCall)
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

// ListenAndServe blocks serving on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"tools": s.dispatcher.Catalog()})
}

type callRequest struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	var req callRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	result := s.dispatcher.Call(r.Context(), req.Name, req.Arguments)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}
