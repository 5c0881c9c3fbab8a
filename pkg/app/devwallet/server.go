// Package devwallet implements app.Runner for the development wallet node.
package devwallet

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apphttp "github.com/chainsafe/land-registry-session/pkg/app/http"
	"github.com/chainsafe/land-registry-session/pkg/config"
	"github.com/chainsafe/land-registry-session/pkg/ethrpc"
)

// Server holds configuration for the development wallet process.
type Server struct {
	cfg *config.DevWalletConfig
}

// NewServer initializes a new development wallet Server.
func NewServer(cfg *config.DevWalletConfig) *Server {
	return &Server{cfg: cfg}
}

// Run serves the development wallet JSON-RPC endpoint at / until an OS shutdown
// signal is received.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("nil config")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	node, err := ethrpc.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("create development wallet: %w", err)
	}
	defer node.Stop()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/", node)

	return apphttp.ServeAndWait(ctx, r, logger, &cfg.Server)
}
