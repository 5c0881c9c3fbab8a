package session

import (
	"context"

	"github.com/ethereum/go-ethereum/event"
)

// Distributor exposes the machine's snapshot and actions to consumers. It holds
// no state of its own.
type Distributor struct {
	machine *Machine
}

// NewDistributor wraps m. It panics when m is nil: consumers must not exist
// before the machine does.
func NewDistributor(m *Machine) *Distributor {
	if m == nil {
		panic("session: distributor created without a machine")
	}
	return &Distributor{machine: m}
}

// Snapshot returns the current session snapshot
func (d *Distributor) Snapshot() Snapshot {
	return d.machine.Snapshot()
}

// Connect runs an explicit wallet connection
func (d *Distributor) Connect(ctx context.Context) (*ConnectResult, error) {
	return d.machine.Connect(ctx)
}

// Disconnect resets the session
func (d *Distributor) Disconnect() Snapshot {
	return d.machine.Disconnect()
}

// IsWalletInstalled reports whether a wallet provider is available
func (d *Distributor) IsWalletInstalled() bool {
	return d.machine.IsWalletInstalled()
}

// Subscribe delivers every published snapshot to ch
func (d *Distributor) Subscribe(ch chan<- Snapshot) event.Subscription {
	return d.machine.Subscribe(ch)
}
