package http

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/chainsafe/land-registry-session/pkg/app/httpserver"
	"github.com/chainsafe/land-registry-session/pkg/config"
)

// ServeAndWait serves handler on the address from cfg until ctx is canceled or the
// server fails, then shuts down gracefully within cfg.ShutdownTimeout.
func ServeAndWait(ctx context.Context, handler http.Handler, logger *zap.Logger, cfg *config.ServerConfig) error {
	if handler == nil {
		return fmt.Errorf("nil handler")
	}
	if cfg == nil {
		return fmt.Errorf("nil server config")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return httpserver.ServeAndWait(ctx, logger, srv, cfg.ShutdownTimeout)
}
