// Package server provides the HTTP REST API for the resume fitter.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/jonathan/resume-fitter/internal/config"
	"github.com/patrickmn/go-cache"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	cfg        config.Config
	fitCache   *cache.Cache
}

// New creates a new server instance. Zero fields in cfg fall back to config.Defaults.
func New(cfg config.Config) (*Server, error) {
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Geometry(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	ttl := cfg.CacheDuration()
	s := &Server{
		cfg:      cfg,
		fitCache: cache.New(ttl, 2*ttl),
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("POST /fit", s.handleFit)
	mux.HandleFunc("POST /seed", s.handleSeed)
	mux.HandleFunc("POST /estimate", s.handleEstimate)
	mux.HandleFunc("GET /health", s.handleHealth)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      middleware.Recoverer(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped handler, for embedding or tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (page=%s fill=%.2f)", s.httpServer.Addr, s.cfg.Page, s.cfg.FillFraction)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.fitCache.Flush()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit limits each client IP to RateLimitPerMinute requests.
// httprate sets the X-RateLimit-* headers on every response.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	limiter := httprate.Limit(
		s.cfg.RateLimitPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(s.rateLimitResponse),
	)
	return limiter(next)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request) {
	log.Printf("[rate-limit] Rate limit exceeded: client=%s limit=%d/min path=%s",
		r.RemoteAddr, s.cfg.RateLimitPerMinute, r.URL.Path)

	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
		"limit":   s.cfg.RateLimitPerMinute,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"page":          s.cfg.Page,
		"cached_fits":   s.fitCache.ItemCount(),
		"fill_fraction": s.cfg.FillFraction,
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
