package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"toolbox/api/config"
	"toolbox/api/handlers"
	"toolbox/api/middleware"
)

// Handlers groups everything the route table serves.
type Handlers struct {
	Catalog    *handlers.CatalogHandler
	Image      *handlers.ImageHandler
	Calculator *handlers.CalculatorHandler
	Text       *handlers.TextHandler
	// Health reports readiness of dependencies; nil means always healthy.
	Health func(ctx context.Context) error
}

type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	log        *zap.Logger
}

// Routes builds the full handler with middleware applied.
func Routes(h Handlers, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", health(h.Health))

	mux.HandleFunc("GET /api/tools", h.Catalog.List)
	mux.HandleFunc("GET /api/tools/{slug}", h.Catalog.Tool)

	mux.HandleFunc("POST /api/tools/{slug}/image", h.Image.Upload)
	mux.HandleFunc("GET /api/tools/{slug}/image", h.Image.Preview)
	mux.HandleFunc("DELETE /api/tools/{slug}/image", h.Image.Clear)
	mux.HandleFunc("POST /api/tools/{slug}/process", h.Image.Process)
	mux.HandleFunc("POST /api/reencode", h.Image.Reencode)

	mux.HandleFunc("POST /api/tools/percentage-calculator", h.Calculator.Percentage)
	mux.HandleFunc("POST /api/tools/bmi-calculator", h.Calculator.BMI)
	mux.HandleFunc("POST /api/tools/calories-calculator", h.Calculator.Calories)
	mux.HandleFunc("POST /api/tools/age-calculator", h.Calculator.Age)
	mux.HandleFunc("POST /api/tools/word-counter", h.Text.WordCount)

	return middleware.Chain(mux,
		middleware.TraceID,
		middleware.Logging(log),
		middleware.Recovery(log),
	)
}

func New(cfg *config.Config, h Handlers, log *zap.Logger) *Server {
	server := &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Addr(),
			Handler:           Routes(h, log),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			MaxHeaderBytes:    1 << 20, // 1 MB
		},
		cfg: cfg,
		log: log,
	}

	log.Info("Server created successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port))

	return server
}

// Run blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Run() error {
	s.log.Info("Server is running",
		zap.String("address", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}

func health(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, code := "ok", http.StatusOK
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				status, code = "unavailable", http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
