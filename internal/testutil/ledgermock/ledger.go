package ledgermock

import (
	"context"
	"math/big"

	"stablevault-backend/internal/domain/borrow"
	"stablevault-backend/internal/domain/vault"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger is a function-backed mock that satisfies borrow.Ledger and
// vault.Reader. Unset functions return context.Canceled.
type Ledger struct {
	RecordIndexFn             func(ctx context.Context, v, borrower common.Address) (uint64, error)
	LiquidationHistoryIndexFn func(ctx context.Context, v, borrower common.Address) ([]uint64, error)
	HistoryIndexFn            func(ctx context.Context, v, borrower common.Address) ([]uint64, error)
	RecordFn                  func(ctx context.Context, v common.Address, index uint64) (borrow.Tuple, error)
	LiquidationRecordsFn      func(ctx context.Context, v common.Address, start, end uint64) (uint64, []borrow.Tuple, error)

	RatesFn            func(ctx context.Context, v common.Address) (vault.RawRates, error)
	PriceFn            func(ctx context.Context, v common.Address) (*big.Int, error)
	FeeFn              func(ctx context.Context, v common.Address) (*big.Int, error)
	LiquidationQuoteFn func(ctx context.Context, v common.Address, amount *big.Int) (*big.Int, error)
}

var (
	_ borrow.Ledger = (*Ledger)(nil)
	_ vault.Reader  = (*Ledger)(nil)
)

func (m *Ledger) RecordIndex(ctx context.Context, v, borrower common.Address) (uint64, error) {
	if m.RecordIndexFn != nil {
		return m.RecordIndexFn(ctx, v, borrower)
	}
	return 0, context.Canceled
}

func (m *Ledger) LiquidationHistoryIndex(ctx context.Context, v, borrower common.Address) ([]uint64, error) {
	if m.LiquidationHistoryIndexFn != nil {
		return m.LiquidationHistoryIndexFn(ctx, v, borrower)
	}
	return nil, context.Canceled
}

func (m *Ledger) HistoryIndex(ctx context.Context, v, borrower common.Address) ([]uint64, error) {
	if m.HistoryIndexFn != nil {
		return m.HistoryIndexFn(ctx, v, borrower)
	}
	return nil, context.Canceled
}

func (m *Ledger) Record(ctx context.Context, v common.Address, index uint64) (borrow.Tuple, error) {
	if m.RecordFn != nil {
		return m.RecordFn(ctx, v, index)
	}
	return nil, context.Canceled
}

func (m *Ledger) LiquidationRecords(ctx context.Context, v common.Address, start, end uint64) (uint64, []borrow.Tuple, error) {
	if m.LiquidationRecordsFn != nil {
		return m.LiquidationRecordsFn(ctx, v, start, end)
	}
	return 0, nil, context.Canceled
}

func (m *Ledger) Rates(ctx context.Context, v common.Address) (vault.RawRates, error) {
	if m.RatesFn != nil {
		return m.RatesFn(ctx, v)
	}
	return vault.RawRates{}, context.Canceled
}

func (m *Ledger) Price(ctx context.Context, v common.Address) (*big.Int, error) {
	if m.PriceFn != nil {
		return m.PriceFn(ctx, v)
	}
	return nil, context.Canceled
}

func (m *Ledger) Fee(ctx context.Context, v common.Address) (*big.Int, error) {
	if m.FeeFn != nil {
		return m.FeeFn(ctx, v)
	}
	return nil, context.Canceled
}

func (m *Ledger) LiquidationQuote(ctx context.Context, v common.Address, amount *big.Int) (*big.Int, error) {
	if m.LiquidationQuoteFn != nil {
		return m.LiquidationQuoteFn(ctx, v, amount)
	}
	return nil, context.Canceled
}
