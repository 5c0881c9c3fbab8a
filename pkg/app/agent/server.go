// Package agent implements app.Runner for the session agent process.
package agent

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apphttp "github.com/chainsafe/land-registry-session/pkg/app/http"
	"github.com/chainsafe/land-registry-session/pkg/app/httpserver"
	"github.com/chainsafe/land-registry-session/pkg/config"
	"github.com/chainsafe/land-registry-session/pkg/ethereum"
	"github.com/chainsafe/land-registry-session/pkg/identity"
	"github.com/chainsafe/land-registry-session/pkg/role"
	"github.com/chainsafe/land-registry-session/pkg/session"
	sessionservice "github.com/chainsafe/land-registry-session/pkg/session/service"
	"github.com/chainsafe/land-registry-session/pkg/wallet"
)

// Server holds cfg to init the session agent.
type Server struct {
	cfg *config.Config
}

// NewServer initializes a new session agent.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run wires the wallet gateway, chain connector, role resolver and identity
// client into the session machine and serves it over HTTP. It blocks until an
// OS shutdown signal is received or a server fails.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("session agent config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting session agent",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("wallet_configured", cfg.Wallet.RPCURL != ""),
		zap.String("registry_contract", cfg.Ethereum.RegistryContract),
	)

	gateway := wallet.Dial(ctx, cfg.Wallet, logger.Named("wallet"))
	defer gateway.Close()

	machine := session.NewMachine(
		gateway,
		ethereum.NewConnector(&cfg.Ethereum, gateway.RPCClient(), logger.Named("ethereum")),
		role.NewResolver(logger.Named("role")),
		identity.NewClient(&cfg.Backend, nil, logger.Named("identity")),
		session.SettingsFromConfig(cfg),
		logger.Named("session"),
	)
	defer machine.Close()

	if err := machine.Start(ctx); err != nil {
		logger.Warn("Initial session probe failed", zap.Error(err))
	}

	svc := sessionservice.NewLog(sessionservice.NewService(session.NewDistributor(machine)), logger)
	router := s.setupRouter(svc, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apphttp.ServeAndWait(gctx, router, logger, &cfg.Server)
	})
	if cfg.Monitoring.Enabled {
		g.Go(func() error {
			return s.serveMetrics(gctx, logger)
		})
	}

	return g.Wait()
}

func (s *Server) setupRouter(svc sessionservice.Service, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Server.WriteTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	sessionservice.RegisterRoutes(r, svc, logger)

	return r
}

func (s *Server) serveMetrics(ctx context.Context, logger *zap.Logger) error {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Monitoring.MetricsPort),
		Handler:      r,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.ReadTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return httpserver.ServeAndWait(ctx, logger, srv, s.cfg.Server.ShutdownTimeout)
}
