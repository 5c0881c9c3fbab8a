// Package role derives the authority tier of an account from the land registry contract.
package role

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

// ErrContractUnreachable is returned when the registry contract cannot be read,
// typically because it is not deployed on the active network.
var ErrContractUnreachable = errors.New("registry contract unreachable")

// Contract is the read-only surface of the registry contract needed to resolve a role.
// It is satisfied by the generated *contracts.LandRegistryCaller.
type Contract interface {
	DEFAULTADMINROLE(opts *bind.CallOpts) ([32]byte, error)
	REGISTRARROLE(opts *bind.CallOpts) ([32]byte, error)
	COURTROLE(opts *bind.CallOpts) ([32]byte, error)
	TAXAUTHORITYROLE(opts *bind.CallOpts) ([32]byte, error)
	HasRole(opts *bind.CallOpts, role [32]byte, account common.Address) (bool, error)
}

type check struct {
	role       Role
	identifier func(c Contract, opts *bind.CallOpts) ([32]byte, error)
}

// precedence is the order capability checks are made in. Tiers overlap in the
// contract's permission model, so the first match wins and Admin must come first.
var precedence = []check{
	{Admin, Contract.DEFAULTADMINROLE},
	{Registrar, Contract.REGISTRARROLE},
	{Court, Contract.COURTROLE},
	{TaxAuthority, Contract.TAXAUTHORITYROLE},
}

// Resolver maps a connected account to its authority tier.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver creates a new Resolver
func NewResolver(logger *zap.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve runs the ordered capability checks for account and returns the first tier
// that holds, or Citizen when none do. Calls are made with opts, sent from account.
// Any failed contract call yields None and an error wrapping ErrContractUnreachable.
func (r *Resolver) Resolve(opts *bind.CallOpts, contract Contract, account common.Address) (Role, error) {
	if contract == nil {
		return None, fmt.Errorf("%w: no contract bound", ErrContractUnreachable)
	}
	if account == (common.Address{}) {
		return None, fmt.Errorf("%w: no account", ErrContractUnreachable)
	}

	callOpts := bind.CallOpts{}
	if opts != nil {
		callOpts = *opts
	}
	callOpts.From = account

	for _, c := range precedence {
		id, err := c.identifier(contract, &callOpts)
		if err != nil {
			return None, fmt.Errorf("%w: read %s identifier: %v", ErrContractUnreachable, c.role, err)
		}

		ok, err := contract.HasRole(&callOpts, id, account)
		if err != nil {
			return None, fmt.Errorf("%w: hasRole(%s): %v", ErrContractUnreachable, c.role, err)
		}
		if ok {
			r.logger.Debug("Resolved on-chain role",
				zap.String("account", account.Hex()),
				zap.Stringer("role", c.role))
			return c.role, nil
		}
	}

	return Citizen, nil
}
