package snapshot

import (
	"context"
	"fmt"
	"slices"

	"stablevault-backend/internal/domain/borrow"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"
)

// Syncer copies ledger state into the snapshot.
type Syncer struct {
	src borrow.Ledger
	dst *Store
}

func NewSyncer(src borrow.Ledger, dst *Store) *Syncer { return &Syncer{src: src, dst: dst} }

// SyncBorrower mirrors one borrower's index lists and every record they
// reference. The borrower's rows are replaced in a single transaction, so
// readers never see a half-applied update. It returns the number of
// records written.
func (s *Syncer) SyncBorrower(ctx context.Context, v, borrower common.Address) (int, error) {
	var (
		current   uint64
		hist, liq []uint64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		current, err = s.src.RecordIndex(gctx, v, borrower)
		return err
	})
	g.Go(func() (err error) {
		hist, err = s.src.HistoryIndex(gctx, v, borrower)
		return err
	})
	g.Go(func() (err error) {
		liq, err = s.src.LiquidationHistoryIndex(gctx, v, borrower)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	// every 1-based index named anywhere, fetched once
	want := map[uint64]struct{}{}
	for _, src := range [][]uint64{{current}, hist, liq} {
		for _, i := range src {
			if i > 0 {
				want[i-1] = struct{}{}
			}
		}
	}
	indices := make([]uint64, 0, len(want))
	for idx := range want {
		indices = append(indices, idx)
	}
	slices.Sort(indices)

	records := make([]*borrow.Record, len(indices))
	g, gctx = errgroup.WithContext(ctx)
	for i, idx := range indices {
		g.Go(func() error {
			t, err := s.src.Record(gctx, v, idx)
			if err != nil {
				return fmt.Errorf("sync record %d: %w", idx, err)
			}
			records[i] = borrow.DecodeRecord(t)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	err := s.dst.Tx(ctx, func(tx *Store) error {
		for i, r := range records {
			if err := tx.PutRecord(ctx, v, indices[i], r); err != nil {
				return err
			}
		}
		if err := tx.db.Where("vault = ? AND borrower = ?", key(v), key(borrower)).Delete(&IndexRow{}).Error; err != nil {
			return err
		}
		if err := tx.SetCurrent(ctx, v, borrower, current); err != nil {
			return err
		}
		for _, i := range hist {
			if err := tx.AppendIndex(ctx, v, borrower, KindHistory, i); err != nil {
				return err
			}
		}
		for _, i := range liq {
			if err := tx.AppendIndex(ctx, v, borrower, KindLiquidation, i); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// liquidationPage bounds one getliqRecord call.
const liquidationPage = 100

// SyncLiquidations mirrors the vault's whole liquidation list, paging the
// source, and replaces the stored list in one transaction. It returns the
// number of slots written.
func (s *Syncer) SyncLiquidations(ctx context.Context, v common.Address) (int, error) {
	var (
		records []*borrow.Record
		total   uint64 = liquidationPage
	)
	for start := uint64(0); start < total; {
		n, page, err := s.src.LiquidationRecords(ctx, v, start, min(start+liquidationPage, total))
		if err != nil {
			return 0, fmt.Errorf("sync liquidations from %d: %w", start, err)
		}
		total = n
		if len(page) == 0 {
			break
		}
		for _, t := range page {
			records = append(records, borrow.DecodeRecord(t))
		}
		start += uint64(len(page))
	}
	if err := s.dst.ReplaceLiquidations(ctx, v, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
