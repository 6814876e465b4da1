// Package api provides the HTTP compile/validate service. The request
// body is a project file in YAML or JSON; responses carry the compiled
// template or the structural violations found.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sfn-compiler/cfn"
	"sfn-compiler/compiler"
	"sfn-compiler/lint"
	"sfn-compiler/project"
)

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	compiler   *compiler.Compiler
	logger     *slog.Logger
	config     *Config
}

// Config holds server configuration.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	CORSOrigins    []string
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxRequestSize: 10 * 1024 * 1024, // 10MB
		CORSOrigins:    []string{"*"},
	}
}

// NewServer creates a new API server around a configured compiler.
func NewServer(c *compiler.Compiler, logger *slog.Logger, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		compiler: c,
		logger:   logger,
		config:   config,
	}
}

// Handler returns the routed and middleware-wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/compile", s.handleCompile)
	mux.HandleFunc("/api/v1/validate", s.handleValidate)
	return s.corsMiddleware(s.loggingMiddleware(mux))
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("API server starting", "port", s.config.Port)
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts the server and drains it on SIGINT or
// SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		s.logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration", time.Since(start).String(),
		)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		allowed := false
		for _, o := range s.config.CORSOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// ENDPOINTS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	proj, ok := s.readProject(w, r)
	if !ok {
		return
	}

	tpl, err := s.compiler.Compile(r.Context(), proj)
	if err != nil {
		s.jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	out, err := cfn.MarshalTemplate(tpl)
	if err != nil {
		s.jsonError(w, http.StatusInternalServerError, fmt.Sprintf("failed to serialize template: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// ValidateResponse reports per-machine structural findings.
type ValidateResponse struct {
	Valid      bool                        `json:"valid"`
	Violations map[string][]lint.Violation `json:"violations,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	proj, ok := s.readProject(w, r)
	if !ok {
		return
	}

	results, err := s.compiler.Validate(proj)
	if err != nil {
		s.jsonError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := ValidateResponse{Valid: true}
	for name, result := range results {
		if !result.Valid() {
			resp.Valid = false
			if resp.Violations == nil {
				resp.Violations = make(map[string][]lint.Violation)
			}
			resp.Violations[name] = result.Violations
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) readProject(w http.ResponseWriter, r *http.Request) (*project.Project, bool) {
	if r.Method != http.MethodPost {
		s.jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err))
		return nil, false
	}

	proj, err := project.ParseBytes(data)
	if err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid project file: %v", err))
		return nil, false
	}
	return proj, true
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) jsonError(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
