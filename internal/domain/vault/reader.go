package vault

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type Reader interface {
	Rates(ctx context.Context, vault common.Address) (RawRates, error)
	Price(ctx context.Context, vault common.Address) (*big.Int, error)
	Fee(ctx context.Context, vault common.Address) (*big.Int, error)

	// LiquidationQuote returns the collateral a liquidator receives for
	// repaying amount of the stable token.
	LiquidationQuote(ctx context.Context, vault common.Address, amount *big.Int) (*big.Int, error)
}
