package service

import (
	"context"
	"errors"

	apperrors "github.com/chainsafe/land-registry-session/pkg/app/errors"
	"github.com/chainsafe/land-registry-session/pkg/identity"
	"github.com/chainsafe/land-registry-session/pkg/session"
	"github.com/chainsafe/land-registry-session/pkg/wallet"
)

// Session is the consumer surface of the session, satisfied by *session.Distributor
type Session interface {
	Snapshot() session.Snapshot
	Connect(ctx context.Context) (*session.ConnectResult, error)
	Disconnect() session.Snapshot
	IsWalletInstalled() bool
}

// Service defines the session operations exposed over HTTP
type Service interface {
	Snapshot(ctx context.Context) session.Snapshot
	Connect(ctx context.Context) (*session.ConnectResult, error)
	Disconnect(ctx context.Context) session.Snapshot
	IsWalletInstalled(ctx context.Context) bool
}

type sessionService struct {
	session Session
}

// NewService creates a new session service
func NewService(s Session) Service {
	return &sessionService{session: s}
}

func (s *sessionService) Snapshot(_ context.Context) session.Snapshot {
	return s.session.Snapshot()
}

// Connect runs an explicit wallet connection. Failures are returned as
// ServiceErrors carrying the message shown to the user.
func (s *sessionService) Connect(ctx context.Context) (*session.ConnectResult, error) {
	res, err := s.session.Connect(ctx)
	if err != nil {
		return nil, mapConnectError(err)
	}
	return res, nil
}

func (s *sessionService) Disconnect(_ context.Context) session.Snapshot {
	return s.session.Disconnect()
}

func (s *sessionService) IsWalletInstalled(_ context.Context) bool {
	return s.session.IsWalletInstalled()
}

func mapConnectError(err error) error {
	switch {
	case errors.Is(err, session.ErrWalletNotInstalled), errors.Is(err, wallet.ErrWalletUnavailable):
		return apperrors.NotSupportedError(err, session.MsgNotInstalled)
	case errors.Is(err, wallet.ErrUserRejected):
		return apperrors.ForbiddenError(err, session.MsgRejected)
	case errors.Is(err, session.ErrNoAccounts):
		return apperrors.ForbiddenError(err, session.MsgNoAccounts)
	case errors.Is(err, wallet.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return apperrors.TimeoutError(err, session.MsgTimeout)
	case errors.Is(err, session.ErrOperationInProgress):
		return apperrors.ConflictError(err, "a wallet connection is already in progress")
	case errors.Is(err, session.ErrSuperseded):
		return apperrors.ConflictError(err, "the connection attempt was cancelled by a newer session change")
	case errors.Is(err, identity.ErrBackendRejected):
		return apperrors.DependencyFailureError(err, session.MsgBackendRejected)
	default:
		return apperrors.DependencyFailureError(err, session.MsgConnectFailed)
	}
}
