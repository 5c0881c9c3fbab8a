package ethrpc

import (
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// DevAPI implements the dev_* namespace used to drive the wallet from scripts:
// switching accounts and networks, locking, and granting registry roles.
type DevAPI struct {
	server *Server
}

// NewDevAPI creates a new DevAPI instance
func NewDevAPI(server *Server) *DevAPI {
	return &DevAPI{server: server}
}

func (api *DevAPI) SetAccounts(accounts []common.Address) bool {
	api.server.logger.Info("Switching accounts", zap.Int("accounts", len(accounts)))
	api.server.SetAccounts(accounts...)
	return true
}

func (api *DevAPI) SetChainId(id int64) bool {
	api.server.logger.Info("Switching network", zap.Int64("chain_id", id))
	api.server.SetChainID(id)
	return true
}

func (api *DevAPI) Lock() bool {
	api.server.SetLocked(true)
	return true
}

func (api *DevAPI) Unlock() bool {
	api.server.SetLocked(false)
	return true
}

func (api *DevAPI) Revoke() bool {
	api.server.SetAuthorized(false)
	return true
}

func (api *DevAPI) RejectPrompts(n int) bool {
	api.server.RejectPrompts(n)
	return true
}

func (api *DevAPI) GrantRole(account common.Address, name string) bool {
	api.server.logger.Info("Granting role", zap.String("account", account.Hex()), zap.String("role", name))
	api.server.Grant(account, name)
	return true
}

func (api *DevAPI) RevokeRole(account common.Address, name string) bool {
	api.server.Revoke(account, name)
	return true
}
