package intent

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrZeroAddress     = errors.New("address must not be zero")
	ErrMaturityElapsed = errors.New("maturity must be in the future")
)

// Intent is an unsigned contract call for the caller's wallet to sign and
// send.
type Intent struct {
	Method string         `json:"method"`
	To     common.Address `json:"to"`
	Data   hexutil.Bytes  `json:"data"`
	Value  *hexutil.Big   `json:"value"`
}
