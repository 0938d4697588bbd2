// Package ledger holds the ledger backends and the metrics decorator shared
// by them.
package ledger

import (
	"context"
	"math/big"

	"stablevault-backend/internal/domain/borrow"
	"stablevault-backend/internal/domain/vault"
	"stablevault-backend/internal/infrastructure/metrics"

	"github.com/ethereum/go-ethereum/common"
)

// Backend is what a ledger implementation provides. Backends that cannot
// answer vault parameter reads return vault.ErrUnsupported.
type Backend interface {
	borrow.Ledger
	vault.Reader
}

// Observed counts every ledger read by method and outcome.
type Observed struct {
	next Backend
	m    *metrics.VaultMetrics
}

func Observe(next Backend, m *metrics.VaultMetrics) *Observed {
	return &Observed{next: next, m: m}
}

func (o *Observed) RecordIndex(ctx context.Context, v, borrower common.Address) (uint64, error) {
	n, err := o.next.RecordIndex(ctx, v, borrower)
	o.m.ObserveLedgerRead("record_index", err)
	return n, err
}

func (o *Observed) LiquidationHistoryIndex(ctx context.Context, v, borrower common.Address) ([]uint64, error) {
	out, err := o.next.LiquidationHistoryIndex(ctx, v, borrower)
	o.m.ObserveLedgerRead("liquidation_history_index", err)
	return out, err
}

func (o *Observed) HistoryIndex(ctx context.Context, v, borrower common.Address) ([]uint64, error) {
	out, err := o.next.HistoryIndex(ctx, v, borrower)
	o.m.ObserveLedgerRead("history_index", err)
	return out, err
}

func (o *Observed) Record(ctx context.Context, v common.Address, index uint64) (borrow.Tuple, error) {
	t, err := o.next.Record(ctx, v, index)
	o.m.ObserveLedgerRead("record", err)
	return t, err
}

func (o *Observed) LiquidationRecords(ctx context.Context, v common.Address, start, end uint64) (uint64, []borrow.Tuple, error) {
	n, t, err := o.next.LiquidationRecords(ctx, v, start, end)
	o.m.ObserveLedgerRead("liquidation_records", err)
	return n, t, err
}

func (o *Observed) Rates(ctx context.Context, v common.Address) (vault.RawRates, error) {
	r, err := o.next.Rates(ctx, v)
	o.m.ObserveLedgerRead("rates", err)
	return r, err
}

func (o *Observed) Price(ctx context.Context, v common.Address) (*big.Int, error) {
	p, err := o.next.Price(ctx, v)
	o.m.ObserveLedgerRead("price", err)
	return p, err
}

func (o *Observed) Fee(ctx context.Context, v common.Address) (*big.Int, error) {
	f, err := o.next.Fee(ctx, v)
	o.m.ObserveLedgerRead("fee", err)
	return f, err
}

func (o *Observed) LiquidationQuote(ctx context.Context, v common.Address, amount *big.Int) (*big.Int, error) {
	q, err := o.next.LiquidationQuote(ctx, v, amount)
	o.m.ObserveLedgerRead("liquidation_quote", err)
	return q, err
}
