package history

import (
	"errors"
	"time"

	"stablevault-backend/internal/domain/borrow"
)

var (
	ErrInvalidRange = errors.New("end must not be before start")
)

// RecordView is a record together with its derived figures, all evaluated
// at the same instant.
type RecordView struct {
	// Index is the record's ledger index, or its position in the
	// liquidation list for Page entries.
	Index uint64 `json:"index"`
	borrow.Record
	Status          borrow.Status `json:"status"`
	IsRecordEnd     bool          `json:"is_record_end"`
	IsInLiquidation bool          `json:"is_in_liquidation"`
	Remaining       borrow.Window `json:"remaining"`
	Maturity        time.Time     `json:"maturity"`
}

func newRecordView(index uint64, r *borrow.Record, now time.Time) RecordView {
	s := borrow.DeriveStatus(r, now)
	return RecordView{
		Index:           index,
		Record:          *r,
		Status:          s,
		IsRecordEnd:     borrow.IsRecordEnd(s),
		IsInLiquidation: borrow.IsInLiquidation(r, now),
		Remaining:       borrow.RemainingWindow(r, now),
		Maturity:        r.Maturity(),
	}
}

type Page struct {
	Start   uint64       `json:"start"`
	Total   uint64       `json:"total"`
	Records []RecordView `json:"records"`
}
