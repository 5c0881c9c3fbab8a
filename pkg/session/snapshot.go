package session

import (
	"github.com/chainsafe/land-registry-session/pkg/identity"
	"github.com/chainsafe/land-registry-session/pkg/role"
)

// State is the connection state of the session
type State string

const (
	StateIdle         State = "IDLE"
	StateProbing      State = "PROBING"
	StateDisconnected State = "DISCONNECTED"
	StateReconciling  State = "RECONCILING"
	StateConnected    State = "CONNECTED"
)

// States lists every state in lifecycle order
var States = []State{StateIdle, StateProbing, StateDisconnected, StateReconciling, StateConnected}

// Web3State is the consumer view of the chain handle
type Web3State struct {
	Account  string    `json:"account"`
	Role     role.Role `json:"role"`
	Provider string    `json:"provider"`
	Contract string    `json:"contract"`
}

// Snapshot is the read-only view of the session published to consumers.
// A snapshot in StateConnected always carries a wallet address.
type Snapshot struct {
	State         State          `json:"state"`
	IsConnected   bool           `json:"isConnected"`
	WalletAddress string         `json:"walletAddress"`
	User          *identity.User `json:"user"`
	IsLoading     bool           `json:"isLoading"`
	Error         string         `json:"error"`
	Web3State     Web3State      `json:"web3State"`
}

// Initial returns the snapshot of a session that has not attempted anything yet
func Initial() Snapshot {
	return Snapshot{
		State:     StateIdle,
		Web3State: Web3State{Role: role.None},
	}
}

// TrustedRole returns the on-chain role, with ok=false while the session is
// still loading and the role must not be relied on.
func (s Snapshot) TrustedRole() (role.Role, bool) {
	if s.IsLoading {
		return role.None, false
	}
	return s.Web3State.Role, true
}

// ConnectResult is returned by an explicit connect
type ConnectResult struct {
	WalletAddress string         `json:"walletAddress"`
	UserExists    bool           `json:"userExists"`
	UserData      *identity.User `json:"userData"`
}
