package ethrpc

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// CallArgs represents the arguments to eth_call
type CallArgs struct {
	From  *common.Address `json:"from"`
	To    *common.Address `json:"to"`
	Gas   *hexutil.Uint64 `json:"gas"`
	Value *hexutil.Big    `json:"value"`
	Data  *hexutil.Bytes  `json:"data"`
	Input *hexutil.Bytes  `json:"input"`
}

// GetData returns the input data, preferring 'input' over 'data'
func (args *CallArgs) GetData() []byte {
	if args.Input != nil {
		return *args.Input
	}
	if args.Data != nil {
		return *args.Data
	}
	return nil
}

// userRejectedError is returned by eth_requestAccounts when the prompt is declined.
// It carries the EIP-1193 code 4001 over the wire.
type userRejectedError struct{}

func (userRejectedError) Error() string  { return "User rejected the request." }
func (userRejectedError) ErrorCode() int { return 4001 }

// revertError mimics the execution-reverted error returned by nodes for eth_call.
type revertError struct {
	reason string
}

func (e *revertError) Error() string          { return "execution reverted: " + e.reason }
func (e *revertError) ErrorCode() int         { return 3 }
func (e *revertError) ErrorData() interface{} { return "0x" }
