package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chainsafe/land-registry-session/pkg/app/errors"
	"github.com/chainsafe/land-registry-session/pkg/identity"
	"github.com/chainsafe/land-registry-session/pkg/session"
	"github.com/chainsafe/land-registry-session/pkg/wallet"
)

type fakeSession struct {
	snapshot          func() session.Snapshot
	connect           func(ctx context.Context) (*session.ConnectResult, error)
	disconnect        func() session.Snapshot
	isWalletInstalled func() bool
}

func (f *fakeSession) Snapshot() session.Snapshot { return f.snapshot() }

func (f *fakeSession) Connect(ctx context.Context) (*session.ConnectResult, error) {
	return f.connect(ctx)
}

func (f *fakeSession) Disconnect() session.Snapshot { return f.disconnect() }

func (f *fakeSession) IsWalletInstalled() bool { return f.isWalletInstalled() }

func TestConnect_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not installed", session.ErrWalletNotInstalled, http.StatusPreconditionFailed, session.MsgNotInstalled},
		{"rejected", fmt.Errorf("%w: denied", wallet.ErrUserRejected), http.StatusForbidden, session.MsgRejected},
		{"no accounts", session.ErrNoAccounts, http.StatusForbidden, session.MsgNoAccounts},
		{"prompt timeout", wallet.ErrTimeout, http.StatusGatewayTimeout, session.MsgTimeout},
		{"in progress", session.ErrOperationInProgress, http.StatusConflict, "a wallet connection is already in progress"},
		{"superseded", session.ErrSuperseded, http.StatusConflict, "the connection attempt was cancelled by a newer session change"},
		{"backend rejected", identity.ErrBackendRejected, http.StatusBadGateway, session.MsgBackendRejected},
		{"unknown", errors.New("boom"), http.StatusBadGateway, session.MsgConnectFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeSession{
				connect: func(context.Context) (*session.ConnectResult, error) { return nil, tt.err },
			})

			res, err := svc.Connect(context.Background())
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.err)

			var svcErr *apperrors.ServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, tt.status, svcErr.StatusCode())
			assert.Equal(t, tt.message, svcErr.Message)
		})
	}
}

func TestConnect_Success(t *testing.T) {
	want := &session.ConnectResult{WalletAddress: "0xabc"}
	svc := NewService(&fakeSession{
		connect: func(context.Context) (*session.ConnectResult, error) { return want, nil },
	})

	res, err := svc.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, res)
}

func TestRedactAddress(t *testing.T) {
	assert.Equal(t, "<none>", redactAddress(""))
	assert.Equal(t, "0xabc", redactAddress("0xabc"))
	assert.Equal(t, "0xabcdef...abcdef", redactAddress("0xabcdef0123456789abcdef0123456789abcdef"))
}
