package borrow

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrRecordNotFound is returned by backends that can tell a missing record
// apart from a transport failure.
var ErrRecordNotFound = errors.New("record not found")

// Ledger is the read side of the vault contract. Indices returned by the
// three index methods are 1-based (0 from RecordIndex means no open
// position); Record takes a 0-based index.
type Ledger interface {
	RecordIndex(ctx context.Context, vault, borrower common.Address) (uint64, error)
	LiquidationHistoryIndex(ctx context.Context, vault, borrower common.Address) ([]uint64, error)
	HistoryIndex(ctx context.Context, vault, borrower common.Address) ([]uint64, error)
	Record(ctx context.Context, vault common.Address, index uint64) (Tuple, error)

	// LiquidationRecords pages the vault's liquidation list and also returns
	// its total length.
	LiquidationRecords(ctx context.Context, vault common.Address, start, end uint64) (uint64, []Tuple, error)
}
