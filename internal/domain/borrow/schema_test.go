package borrow

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
)

func TestDecodeRecord_FullTuple(t *testing.T) {
	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	r := DecodeRecord(Tuple{
		alice,
		bob.Hex(),
		big.NewInt(1_700_000_000),
		"1700086400",
		uint64(1_800_000_000),
		big.NewInt(200),
		uint8(1),
		huge,
		big.NewInt(750),
		"1000",
		big.NewInt(12),
		"3",
	})

	assert.Equal(t, alice, r.Borrower)
	assert.Equal(t, bob, r.Payer)
	assert.Equal(t, int64(1_700_000_000), r.StartTime)
	assert.Equal(t, int64(1_700_086_400), r.EndTime)
	assert.Equal(t, int64(1_800_000_000), r.Terminal)
	assert.Equal(t, int64(200), r.InterestRate)
	assert.Equal(t, StatusActive, r.RawStatus)
	assert.Equal(t, "123456789012345678901234567890", r.PledgeAmount.String())
	assert.Equal(t, "750", r.RemainingBorrowed.String())
	assert.Equal(t, "1000", r.BorrowAmount.String())
	assert.Equal(t, "12", r.InterestFee.String())
	assert.Equal(t, "3", r.Fee.String())
}

func TestDecodeRecord_EmptyAndShortTuples(t *testing.T) {
	for _, tup := range []Tuple{nil, {}, {alice}, {alice, nil, nil, big.NewInt(5)}} {
		r := DecodeRecord(tup)
		require.NotNil(t, r)
		assert.Equal(t, StatusNone, r.RawStatus)
		assert.True(t, r.Fee.Equal(decimal.Zero))
		assert.Equal(t, common.Address{}, r.Payer)
		assert.Equal(t, int64(0), r.InterestRate)
	}
}

func TestDecodeRecord_MalformedElementsDefault(t *testing.T) {
	var nilBig *big.Int
	r := DecodeRecord(Tuple{
		"not-an-address",
		42,
		"soon",
		nilBig,
		new(big.Int).Lsh(big.NewInt(1), 80), // beyond int64
		struct{}{},
		big.NewInt(-1),
		"1.5",
		nil,
		"0x10",
		decimal.NewFromInt(9),
		[]byte("x"),
	})

	assert.Equal(t, common.Address{}, r.Borrower)
	assert.Equal(t, common.Address{}, r.Payer)
	assert.Equal(t, int64(0), r.StartTime)
	assert.Equal(t, int64(0), r.EndTime)
	assert.Equal(t, int64(0), r.Terminal)
	assert.Equal(t, int64(0), r.InterestRate)
	assert.Equal(t, StatusNone, r.RawStatus)
	assert.True(t, r.PledgeAmount.IsZero())
	assert.True(t, r.RemainingBorrowed.IsZero())
	assert.Equal(t, "16", r.BorrowAmount.String())
	assert.Equal(t, "9", r.InterestFee.String())
	assert.True(t, r.Fee.IsZero())
}

func TestRecordSchema_PositionsAreUniqueAndDense(t *testing.T) {
	seen := map[int]string{}
	for _, f := range RecordSchema {
		prev, dup := seen[f.Position]
		require.False(t, dup, "position %d used by %s and %s", f.Position, prev, f.Name)
		seen[f.Position] = f.Name
	}
	for i := 0; i < TupleLen; i++ {
		_, ok := seen[i]
		assert.True(t, ok, "position %d unmapped", i)
	}
}
