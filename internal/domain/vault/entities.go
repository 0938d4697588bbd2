package vault

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	ErrUnsupported = errors.New("operation not supported by ledger backend")
)

// RawRates are the vault's rate parameters scaled by RateScale.
type RawRates struct {
	LTV         *big.Int
	Liquidation *big.Int
	Interest    *big.Int
}

// RateScale converts the vault's basis-point style rates to ratios.
var RateScale = decimal.NewFromInt(10000)

// Fallbacks applied when the vault reports a zero rate.
var (
	DefaultLTVRate         = decimal.RequireFromString("1.5")
	DefaultLiquidationRate = decimal.RequireFromString("1.2")
	DefaultInterestRate    = decimal.RequireFromString("0.02")
)

// Info is the borrower-facing summary of a vault's parameters.
type Info struct {
	// borrowable = pledge value / LTVRate
	LTVRate decimal.Decimal `json:"ltv_rate"`
	// positions are liquidated once collateral ratio drops below this
	LiquidationRate decimal.Decimal `json:"liquidation_rate"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	Price           decimal.Decimal `json:"price"`
	Fee             decimal.Decimal `json:"fee"`
}

// Ratio scales a raw rate, falling back to def when the rate is unset.
func Ratio(raw *big.Int, def decimal.Decimal) decimal.Decimal {
	if raw == nil || raw.Sign() == 0 {
		return def
	}
	return decimal.NewFromBigInt(raw, 0).Div(RateScale)
}
