package borrow

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Tuple is the positional record shape returned by the vault's getRecord.
type Tuple []any

// Kind selects how a tuple element is converted and what it defaults to.
type Kind int

const (
	KindAddress Kind = iota
	KindInt
	KindStatus
	KindAmount
)

// Default is the value a field takes when its element is missing or cannot
// be converted.
func (k Kind) Default() any {
	switch k {
	case KindAddress:
		return common.Address{}
	case KindInt:
		return int64(0)
	case KindStatus:
		return StatusNone
	}
	return decimal.Zero
}

// Field binds a tuple position to a Record field.
type Field struct {
	Name     string
	Position int
	Kind     Kind
	set      func(r *Record, v any)
}

// RecordSchema is the vault's getRecord output layout. Position 8 is the
// outstanding stable-token amount (btu_amount) and position 9 the amount
// originally borrowed (initial_btu_amount).
var RecordSchema = []Field{
	{"borrower", 0, KindAddress, func(r *Record, v any) { r.Borrower = v.(common.Address) }},
	{"payer", 1, KindAddress, func(r *Record, v any) { r.Payer = v.(common.Address) }},
	{"start_time", 2, KindInt, func(r *Record, v any) { r.StartTime = v.(int64) }},
	{"end_time", 3, KindInt, func(r *Record, v any) { r.EndTime = v.(int64) }},
	{"terminal", 4, KindInt, func(r *Record, v any) { r.Terminal = v.(int64) }},
	{"interest_rate", 5, KindInt, func(r *Record, v any) { r.InterestRate = v.(int64) }},
	{"status", 6, KindStatus, func(r *Record, v any) { r.RawStatus = v.(Status) }},
	{"pledge_amount", 7, KindAmount, func(r *Record, v any) { r.PledgeAmount = v.(decimal.Decimal) }},
	{"remaining_borrowed", 8, KindAmount, func(r *Record, v any) { r.RemainingBorrowed = v.(decimal.Decimal) }},
	{"borrow_amount", 9, KindAmount, func(r *Record, v any) { r.BorrowAmount = v.(decimal.Decimal) }},
	{"interest_fee", 10, KindAmount, func(r *Record, v any) { r.InterestFee = v.(decimal.Decimal) }},
	{"fee", 11, KindAmount, func(r *Record, v any) { r.Fee = v.(decimal.Decimal) }},
}

// TupleLen is the number of positions RecordSchema reads.
var TupleLen = len(RecordSchema)

// DecodeRecord maps a raw tuple onto a Record. It never fails: short tuples,
// nil elements and values of an unexpected shape fall back to field defaults.
func DecodeRecord(t Tuple) *Record {
	r := &Record{}
	for _, f := range RecordSchema {
		var v any
		if f.Position < len(t) {
			v = t[f.Position]
		}
		f.set(r, f.convert(v))
	}
	return r
}

func (f Field) convert(v any) any {
	if v == nil {
		return f.Kind.Default()
	}
	switch f.Kind {
	case KindAddress:
		if a, ok := toAddress(v); ok {
			return a
		}
	case KindInt:
		if b, ok := toBig(v); ok && b.IsInt64() {
			return b.Int64()
		}
	case KindStatus:
		if b, ok := toBig(v); ok && b.Sign() >= 0 && b.Cmp(big.NewInt(255)) <= 0 {
			return Status(b.Uint64())
		}
	case KindAmount:
		if b, ok := toBig(v); ok {
			return decimal.NewFromBigInt(b, 0)
		}
	}
	return f.Kind.Default()
}

func toAddress(v any) (common.Address, bool) {
	switch a := v.(type) {
	case common.Address:
		return a, true
	case *common.Address:
		if a != nil {
			return *a, true
		}
	case [common.AddressLength]byte:
		return common.Address(a), true
	case string:
		if common.IsHexAddress(a) {
			return common.HexToAddress(a), true
		}
	case fmt.Stringer:
		return toAddress(a.String())
	}
	return common.Address{}, false
}

func toBig(v any) (*big.Int, bool) {
	switch n := v.(type) {
	case *big.Int:
		if n != nil {
			return new(big.Int).Set(n), true
		}
	case big.Int:
		return new(big.Int).Set(&n), true
	case decimal.Decimal:
		if n.Equal(n.Truncate(0)) {
			return n.BigInt(), true
		}
	case int:
		return big.NewInt(int64(n)), true
	case int8:
		return big.NewInt(int64(n)), true
	case int16:
		return big.NewInt(int64(n)), true
	case int32:
		return big.NewInt(int64(n)), true
	case int64:
		return big.NewInt(n), true
	case uint:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), true
	case uint64:
		return new(big.Int).SetUint64(n), true
	case string:
		return parseBig(n)
	case fmt.Stringer:
		return parseBig(n.String())
	}
	return nil, false
}

func parseBig(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if h, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		return new(big.Int).SetString(h, 16)
	}
	return new(big.Int).SetString(s, 10)
}
