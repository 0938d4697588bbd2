package history

import (
	"context"
	"slices"
	"time"

	"stablevault-backend/internal/domain/borrow"
	"stablevault-backend/internal/infrastructure/metrics"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

type Usecase struct {
	ledger  borrow.Ledger
	now     func() time.Time
	metrics *metrics.VaultMetrics
}

// NewUsecase wires the aggregator to a ledger. A nil clock means time.Now.
func NewUsecase(l borrow.Ledger, now func() time.Time) *Usecase {
	if now == nil {
		now = time.Now
	}
	return &Usecase{ledger: l, now: now, metrics: metrics.Vault()}
}

// History returns the borrower's records, most recent position first, with
// every record that sits past its liquidation grace window left out. With
// all=false only the currently open position is considered.
//
// Record fetches run concurrently; the first ledger error aborts the call
// and is returned as is.
func (u *Usecase) History(ctx context.Context, vault, borrower common.Address, all bool) ([]RecordView, error) {
	scope := "current"
	if all {
		scope = "all"
	}
	defer u.metrics.ObserveAggregation(scope, time.Now())

	indices, err := u.indices(ctx, vault, borrower, all)
	if err != nil {
		return nil, err
	}

	records := make([]*borrow.Record, len(indices))
	g, gctx := errgroup.WithContext(ctx)
	for i, idx := range indices {
		g.Go(func() error {
			t, err := u.ledger.Record(gctx, vault, idx)
			if err != nil {
				return err
			}
			records[i] = borrow.DecodeRecord(t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := u.now()
	out := make([]RecordView, 0, len(records))
	for i, r := range records {
		if borrow.IsInLiquidation(r, now) {
			continue
		}
		out = append(out, newRecordView(indices[i], r, now))
	}
	u.metrics.AddHidden(len(records) - len(out))
	return out, nil
}

// indices resolves the 0-based record indices to fetch, already reversed so
// the most recently added position comes first.
func (u *Usecase) indices(ctx context.Context, vault, borrower common.Address, all bool) ([]uint64, error) {
	if !all {
		i, err := u.ledger.RecordIndex(ctx, vault, borrower)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			return nil, nil
		}
		return []uint64{i - 1}, nil
	}

	liq, err := u.ledger.LiquidationHistoryIndex(ctx, vault, borrower)
	if err != nil {
		return nil, err
	}
	hist, err := u.ledger.HistoryIndex(ctx, vault, borrower)
	if err != nil {
		return nil, err
	}

	list := make([]uint64, 0, len(liq)+len(hist))
	seen := make(map[uint64]struct{}, len(liq)+len(hist))
	for _, src := range [][]uint64{liq, hist} {
		for _, i := range src {
			// 1-based on the ledger; 0 never names a record
			if i == 0 {
				continue
			}
			if _, dup := seen[i-1]; dup {
				continue
			}
			seen[i-1] = struct{}{}
			list = append(list, i-1)
		}
	}
	slices.Reverse(list)
	return list, nil
}

// LiquidationList pages the vault's liquidation list as reported, without
// grace-window filtering.
func (u *Usecase) LiquidationList(ctx context.Context, vault common.Address, start, end uint64) (*Page, error) {
	if end < start {
		return nil, ErrInvalidRange
	}
	total, tuples, err := u.ledger.LiquidationRecords(ctx, vault, start, end)
	if err != nil {
		return nil, err
	}
	now := u.now()
	page := &Page{Start: start, Total: total, Records: make([]RecordView, 0, len(tuples))}
	for i, t := range tuples {
		page.Records = append(page.Records, newRecordView(start+uint64(i), borrow.DecodeRecord(t), now))
	}
	return page, nil
}
