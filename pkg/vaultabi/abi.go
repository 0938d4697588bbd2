// Package vaultabi holds the contract ABI fragments the service reads from
// and encodes calls for.
package vaultabi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const recordTuple = `[
	{"name":"borrower","type":"address"},
	{"name":"payer","type":"address"},
	{"name":"startTime","type":"uint256"},
	{"name":"endTime","type":"uint256"},
	{"name":"terminal","type":"uint256"},
	{"name":"interest_rate","type":"uint256"},
	{"name":"status","type":"uint8"},
	{"name":"btcc_amount","type":"uint256"},
	{"name":"btu_amount","type":"uint256"},
	{"name":"initial_btu_amount","type":"uint256"},
	{"name":"interest","type":"uint256"},
	{"name":"fee","type":"uint256"}
]`

// VaultJSON is the read surface of the stable vault contract.
const VaultJSON = `[
	{"type":"function","name":"getRecord","stateMutability":"view",
	 "inputs":[{"name":"index_","type":"uint256"}],
	 "outputs":[{"name":"","type":"tuple","components":` + recordTuple + `}]},
	{"type":"function","name":"getRecordIndex","stateMutability":"view",
	 "inputs":[{"name":"addr_","type":"address"}],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getRecordHistoryIndex","stateMutability":"view",
	 "inputs":[{"name":"addr_","type":"address"}],
	 "outputs":[{"name":"","type":"uint256[]"}]},
	{"type":"function","name":"getRecordLiquidationHistoryIndex","stateMutability":"view",
	 "inputs":[{"name":"addr_","type":"address"}],
	 "outputs":[{"name":"","type":"uint256[]"}]},
	{"type":"function","name":"getliqRecord","stateMutability":"view",
	 "inputs":[{"name":"begin","type":"uint256"},{"name":"end","type":"uint256"}],
	 "outputs":[{"name":"length","type":"uint256"},{"name":"","type":"tuple[]","components":` + recordTuple + `}]},
	{"type":"function","name":"getAllRate","stateMutability":"view","inputs":[],
	 "outputs":[{"name":"ltv_rate_","type":"uint256"},{"name":"liq_rate_","type":"uint256"},{"name":"interest_rate_","type":"uint256"}]},
	{"type":"function","name":"getPrice","stateMutability":"view","inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"fee","stateMutability":"view","inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getliqdationBTCCAmount","stateMutability":"view",
	 "inputs":[{"name":"amount_","type":"uint256"}],
	 "outputs":[{"name":"","type":"uint256"}]}
]`

// CollateralJSON covers the collateral token calls a borrower makes.
const CollateralJSON = `[
	{"type":"function","name":"deposit","stateMutability":"nonpayable",
	 "inputs":[{"name":"amount","type":"uint256"},{"name":"time","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"inc","stateMutability":"nonpayable",
	 "inputs":[{"name":"user","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]}
]`

// StableJSON covers the stable token calls for repayment and liquidation.
const StableJSON = `[
	{"type":"function","name":"withdraw","stateMutability":"nonpayable",
	 "inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"liquidate","stateMutability":"nonpayable",
	 "inputs":[{"name":"user","type":"address"}],"outputs":[]}
]`

var (
	Vault      = mustParse(VaultJSON)
	Collateral = mustParse(CollateralJSON)
	Stable     = mustParse(StableJSON)
)

func mustParse(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic("vaultabi: " + err.Error())
	}
	return parsed
}
