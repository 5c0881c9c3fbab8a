package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/land-registry-session/pkg/session"
)

const serviceName = "SessionService"

// addressDisplaySize is how many hex digits of a wallet address are kept on each side
const addressDisplaySize = 6

// logService wraps Service with automatic logging of the session actions
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the session Service.
// It logs method entry/exit, duration, errors, and redacted wallet addresses.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) Snapshot(ctx context.Context) session.Snapshot {
	return ls.svc.Snapshot(ctx)
}

func (ls *logService) IsWalletInstalled(ctx context.Context) bool {
	return ls.svc.IsWalletInstalled(ctx)
}

// Connect wraps the service method with logging
func (ls *logService) Connect(ctx context.Context) (resp *session.ConnectResult, err error) {
	start := time.Now()

	ls.logger.Info("Connect started",
		zap.String("service", serviceName),
		zap.String("method", "Connect"),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("Connect failed",
				zap.String("service", serviceName),
				zap.String("method", "Connect"),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			ls.logger.Info("Connect completed",
				zap.String("service", serviceName),
				zap.String("method", "Connect"),
				zap.String("wallet_address", redactAddress(resp.WalletAddress)),
				zap.Bool("user_exists", resp.UserExists),
				zap.Duration("duration", duration),
			)
		}
	}()

	return ls.svc.Connect(ctx)
}

// Disconnect wraps the service method with logging
func (ls *logService) Disconnect(ctx context.Context) session.Snapshot {
	start := time.Now()
	previous := ls.svc.Snapshot(ctx)

	snap := ls.svc.Disconnect(ctx)

	ls.logger.Info("Disconnect completed",
		zap.String("service", serviceName),
		zap.String("method", "Disconnect"),
		zap.String("wallet_address", redactAddress(previous.WalletAddress)),
		zap.Duration("duration", time.Since(start)),
	)
	return snap
}

// redactAddress keeps the head and tail of a wallet address
func redactAddress(addr string) string {
	if addr == "" {
		return "<none>"
	}
	if len(addr) <= 2+2*addressDisplaySize {
		return addr
	}
	return addr[:2+addressDisplaySize] + "..." + addr[len(addr)-addressDisplaySize:]
}
