// Package snapshot serves the ledger from a SQL mirror of the vault
// contract, kept current by Syncer.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"stablevault-backend/internal/domain/borrow"
	"stablevault-backend/internal/domain/vault"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct{ db *gorm.DB }

var (
	_ borrow.Ledger = (*Store)(nil)
	_ vault.Reader  = (*Store)(nil)
)

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// Tx runs fn in a db transaction, passing a store bound to the tx
func (s *Store) Tx(ctx context.Context, fn func(s *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func key(a common.Address) string { return strings.ToLower(a.Hex()) }

func (s *Store) RecordIndex(ctx context.Context, v, borrower common.Address) (uint64, error) {
	var row IndexRow
	err := s.db.WithContext(ctx).
		Where("vault = ? AND borrower = ? AND kind = ?", key(v), key(borrower), KindCurrent).
		Order("id DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return row.RecordIndex, err
}

func (s *Store) HistoryIndex(ctx context.Context, v, borrower common.Address) ([]uint64, error) {
	return s.indexList(ctx, v, borrower, KindHistory)
}

func (s *Store) LiquidationHistoryIndex(ctx context.Context, v, borrower common.Address) ([]uint64, error) {
	return s.indexList(ctx, v, borrower, KindLiquidation)
}

func (s *Store) indexList(ctx context.Context, v, borrower common.Address, kind string) ([]uint64, error) {
	out := []uint64{}
	err := s.db.WithContext(ctx).Model(&IndexRow{}).
		Where("vault = ? AND borrower = ? AND kind = ?", key(v), key(borrower), kind).
		Order("position ASC").
		Pluck("record_index", &out).Error
	return out, err
}

func (s *Store) Record(ctx context.Context, v common.Address, index uint64) (borrow.Tuple, error) {
	var row RecordRow
	err := s.db.WithContext(ctx).
		Where("vault = ? AND record_index = ?", key(v), index).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("record %d: %w", index, borrow.ErrRecordNotFound)
	}
	if err != nil {
		return nil, err
	}
	return row.tuple(), nil
}

// LiquidationRecords returns list slots in [start, end) and the list length.
func (s *Store) LiquidationRecords(ctx context.Context, v common.Address, start, end uint64) (uint64, []borrow.Tuple, error) {
	db := s.db.WithContext(ctx)

	var total int64
	if err := db.Model(&LiquidationRow{}).Where("vault = ?", key(v)).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var slots []LiquidationRow
	err := db.Where("vault = ? AND position >= ? AND position < ?", key(v), start, end).
		Order("position ASC").
		Find(&slots).Error
	if err != nil {
		return 0, nil, err
	}
	out := make([]borrow.Tuple, len(slots))
	for i, sl := range slots {
		out[i] = sl.tuple()
	}
	return uint64(total), out, nil
}

// The snapshot carries no vault parameters.

func (s *Store) Rates(context.Context, common.Address) (vault.RawRates, error) {
	return vault.RawRates{}, vault.ErrUnsupported
}

func (s *Store) Price(context.Context, common.Address) (*big.Int, error) {
	return nil, vault.ErrUnsupported
}

func (s *Store) Fee(context.Context, common.Address) (*big.Int, error) {
	return nil, vault.ErrUnsupported
}

func (s *Store) LiquidationQuote(context.Context, common.Address, *big.Int) (*big.Int, error) {
	return nil, vault.ErrUnsupported
}

// PutRecord inserts or replaces the mirror of record index.
func (s *Store) PutRecord(ctx context.Context, v common.Address, index uint64, r *borrow.Record) error {
	row := rowFromRecord(v, index, r)
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vault"}, {Name: "record_index"}},
		UpdateAll: true,
	}).Create(&row).Error
}

// SetCurrent replaces the borrower's open position. idx is 1-based; 0 clears it.
func (s *Store) SetCurrent(ctx context.Context, v, borrower common.Address, idx uint64) error {
	return s.Tx(ctx, func(tx *Store) error {
		err := tx.db.Where("vault = ? AND borrower = ? AND kind = ?", key(v), key(borrower), KindCurrent).
			Delete(&IndexRow{}).Error
		if err != nil || idx == 0 {
			return err
		}
		return tx.db.Create(&IndexRow{Vault: key(v), Borrower: key(borrower), Kind: KindCurrent, RecordIndex: idx}).Error
	})
}

// AppendIndex adds a 1-based index to the end of one of the borrower's lists.
func (s *Store) AppendIndex(ctx context.Context, v, borrower common.Address, kind string, idx uint64) error {
	if kind != KindHistory && kind != KindLiquidation {
		return fmt.Errorf("append index: unknown kind %q", kind)
	}
	return s.Tx(ctx, func(tx *Store) error {
		var n int64
		err := tx.db.Model(&IndexRow{}).
			Where("vault = ? AND borrower = ? AND kind = ?", key(v), key(borrower), kind).
			Count(&n).Error
		if err != nil {
			return err
		}
		return tx.db.Create(&IndexRow{Vault: key(v), Borrower: key(borrower), Kind: kind, Position: int(n), RecordIndex: idx}).Error
	})
}

// ReplaceLiquidations swaps the vault's liquidation list for records, in order.
func (s *Store) ReplaceLiquidations(ctx context.Context, v common.Address, records []*borrow.Record) error {
	return s.Tx(ctx, func(tx *Store) error {
		if err := tx.db.Where("vault = ?", key(v)).Delete(&LiquidationRow{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		rows := make([]LiquidationRow, len(records))
		for i, r := range records {
			rows[i] = LiquidationRow{Vault: key(v), Position: uint64(i), RecordColumns: columnsFromRecord(r)}
		}
		return tx.db.CreateInBatches(rows, 100).Error
	})
}

func rowFromRecord(v common.Address, index uint64, r *borrow.Record) RecordRow {
	return RecordRow{Vault: key(v), RecordIndex: index, RecordColumns: columnsFromRecord(r)}
}

func columnsFromRecord(r *borrow.Record) RecordColumns {
	return RecordColumns{
		Borrower:         key(r.Borrower),
		Payer:            key(r.Payer),
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Terminal:         r.Terminal,
		InterestRate:     r.InterestRate,
		Status:           uint8(r.RawStatus),
		BtccAmount:       r.PledgeAmount.String(),
		BtuAmount:        r.RemainingBorrowed.String(),
		InitialBtuAmount: r.BorrowAmount.String(),
		Interest:         r.InterestFee.String(),
		Fee:              r.Fee.String(),
	}
}

// tuple lays the columns out in getRecord order.
func (r RecordColumns) tuple() borrow.Tuple {
	return borrow.Tuple{
		r.Borrower,
		r.Payer,
		r.StartTime,
		r.EndTime,
		r.Terminal,
		r.InterestRate,
		r.Status,
		r.BtccAmount,
		r.BtuAmount,
		r.InitialBtuAmount,
		r.Interest,
		r.Fee,
	}
}
