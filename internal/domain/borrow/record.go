package borrow

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// LiquidationGraceMinutes is the window after maturity during which a
// position is presumed to be mid-liquidation before the ledger reports a
// terminal status.
const LiquidationGraceMinutes = 6

// Record is one borrow position as reported by the vault. It holds only raw
// ledger values; everything time dependent is derived on demand.
type Record struct {
	Borrower          common.Address  `json:"borrower"`
	Payer             common.Address  `json:"payer"`
	StartTime         int64           `json:"start_time"`
	EndTime           int64           `json:"end_time"`
	Terminal          int64           `json:"terminal"`
	InterestRate      int64           `json:"interest_rate"`
	RawStatus         Status          `json:"raw_status"`
	PledgeAmount      decimal.Decimal `json:"pledge_amount"`
	BorrowAmount      decimal.Decimal `json:"borrow_amount"`
	RemainingBorrowed decimal.Decimal `json:"remaining_borrowed"`
	InterestFee       decimal.Decimal `json:"interest_fee"`
	Fee               decimal.Decimal `json:"fee"`
}

func (r *Record) maturity() time.Time { return time.Unix(r.EndTime, 0) }

// elapsedMinutes is the whole number of minutes from maturity to now,
// truncated toward zero.
func (r *Record) elapsedMinutes(now time.Time) int64 {
	return int64(now.Sub(r.maturity()) / time.Minute)
}

// DeriveStatus promotes an active record to matured once now reaches its end
// time. Every other status is returned as reported.
func DeriveStatus(r *Record, now time.Time) Status {
	if r.RawStatus == StatusActive && !now.Before(r.maturity()) {
		return StatusMatured
	}
	return r.RawStatus
}

func IsRecordEnd(s Status) bool { return s.Terminal() }

// IsInLiquidation reports whether the record sits past the grace window
// without a terminal status yet.
func IsInLiquidation(r *Record, now time.Time) bool {
	return !IsRecordEnd(DeriveStatus(r, now)) && r.elapsedMinutes(now) > LiquidationGraceMinutes
}

// RemainingWindow computes the remaining time figure shown for a record.
func RemainingWindow(r *Record, now time.Time) Window {
	s := DeriveStatus(r, now)
	if IsRecordEnd(s) {
		return Window{Ended: true}
	}
	if s == StatusMatured {
		t := r.elapsedMinutes(now)
		if t < 0 {
			t = 0
		}
		return Window{Grace: true, Minutes: LiquidationGraceMinutes - t}
	}
	return Window{Minutes: int64(r.maturity().Sub(now) / time.Minute)}
}

func (r *Record) Status(now time.Time) Status { return DeriveStatus(r, now) }
func (r *Record) IsRecordEnd(now time.Time) bool { return IsRecordEnd(DeriveStatus(r, now)) }
func (r *Record) IsInLiquidation(now time.Time) bool { return IsInLiquidation(r, now) }
func (r *Record) RemainingWindow(now time.Time) Window { return RemainingWindow(r, now) }
func (r *Record) Maturity() time.Time { return r.maturity().UTC() }

// Window is either a grace countdown ("3/6") for matured records or a plain
// minute count until maturity. Ended records carry zero.
type Window struct {
	Ended   bool
	Grace   bool
	Minutes int64
}

func (w Window) String() string {
	switch {
	case w.Ended:
		return "0"
	case w.Grace:
		return fmt.Sprintf("%d/%d", w.Minutes, LiquidationGraceMinutes)
	}
	return strconv.FormatInt(w.Minutes, 10)
}

func (w Window) MarshalJSON() ([]byte, error) {
	if w.Grace {
		return json.Marshal(w.String())
	}
	if w.Ended {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatInt(w.Minutes, 10)), nil
}
