package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"

	"stablevault-backend/internal/domain/borrow"
	"stablevault-backend/internal/domain/vault"
	"stablevault-backend/pkg/vaultabi"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

var ErrIndexOverflow = errors.New("ledger index exceeds uint64")

// Caller is the subset of the Ethereum RPC the ledger reads through.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Ledger reads borrow records and vault parameters straight from the vault
// contract with eth_call against the latest block.
type Ledger struct {
	caller  Caller
	timeout time.Duration
}

var (
	_ borrow.Ledger = (*Ledger)(nil)
	_ vault.Reader  = (*Ledger)(nil)
)

func New(c Caller, timeout time.Duration) *Ledger { return &Ledger{caller: c, timeout: timeout} }

// Dial connects to an EVM JSON-RPC endpoint.
func Dial(ctx context.Context, endpoint string, timeout time.Duration) (*Ledger, *ethclient.Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, nil, fmt.Errorf("evm endpoint required")
	}
	client, err := ethclient.DialContext(ctx, trimmed)
	if err != nil {
		return nil, nil, err
	}
	return New(client, timeout), client, nil
}

func (l *Ledger) call(ctx context.Context, v common.Address, method string, args ...any) ([]any, error) {
	data, err := vaultabi.Vault.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: pack: %w", method, err)
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	out, err := l.caller.CallContract(ctx, ethereum.CallMsg{To: &v, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	vals, err := vaultabi.Vault.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("%s: unpack: %w", method, err)
	}
	return vals, nil
}

func (l *Ledger) callBig(ctx context.Context, v common.Address, method string, args ...any) (*big.Int, error) {
	vals, err := l.call(ctx, v, method, args...)
	if err != nil {
		return nil, err
	}
	return bigAt(vals, 0), nil
}

func (l *Ledger) RecordIndex(ctx context.Context, v, borrower common.Address) (uint64, error) {
	n, err := l.callBig(ctx, v, "getRecordIndex", borrower)
	if err != nil {
		return 0, err
	}
	return toUint64(n)
}

func (l *Ledger) HistoryIndex(ctx context.Context, v, borrower common.Address) ([]uint64, error) {
	return l.indexList(ctx, v, "getRecordHistoryIndex", borrower)
}

func (l *Ledger) LiquidationHistoryIndex(ctx context.Context, v, borrower common.Address) ([]uint64, error) {
	return l.indexList(ctx, v, "getRecordLiquidationHistoryIndex", borrower)
}

func (l *Ledger) indexList(ctx context.Context, v common.Address, method string, borrower common.Address) ([]uint64, error) {
	vals, err := l.call(ctx, v, method, borrower)
	if err != nil {
		return nil, err
	}
	var raw []*big.Int
	if len(vals) > 0 {
		raw, _ = vals[0].([]*big.Int)
	}
	out := make([]uint64, 0, len(raw))
	for _, n := range raw {
		u, err := toUint64(n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		out = append(out, u)
	}
	return out, nil
}

func (l *Ledger) Record(ctx context.Context, v common.Address, index uint64) (borrow.Tuple, error) {
	vals, err := l.call(ctx, v, "getRecord", new(big.Int).SetUint64(index))
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil
	}
	return flatten(vals[0]), nil
}

func (l *Ledger) LiquidationRecords(ctx context.Context, v common.Address, start, end uint64) (uint64, []borrow.Tuple, error) {
	vals, err := l.call(ctx, v, "getliqRecord", new(big.Int).SetUint64(start), new(big.Int).SetUint64(end))
	if err != nil {
		return 0, nil, err
	}
	total, err := toUint64(bigAt(vals, 0))
	if err != nil {
		return 0, nil, fmt.Errorf("getliqRecord: %w", err)
	}
	var tuples []borrow.Tuple
	if len(vals) > 1 {
		rv := reflect.ValueOf(vals[1])
		if rv.Kind() == reflect.Slice {
			tuples = make([]borrow.Tuple, 0, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				tuples = append(tuples, flatten(rv.Index(i).Interface()))
			}
		}
	}
	return total, tuples, nil
}

func (l *Ledger) Rates(ctx context.Context, v common.Address) (vault.RawRates, error) {
	vals, err := l.call(ctx, v, "getAllRate")
	if err != nil {
		return vault.RawRates{}, err
	}
	return vault.RawRates{
		LTV:         bigAt(vals, 0),
		Liquidation: bigAt(vals, 1),
		Interest:    bigAt(vals, 2),
	}, nil
}

func (l *Ledger) Price(ctx context.Context, v common.Address) (*big.Int, error) {
	return l.callBig(ctx, v, "getPrice")
}

func (l *Ledger) Fee(ctx context.Context, v common.Address) (*big.Int, error) {
	return l.callBig(ctx, v, "fee")
}

func (l *Ledger) LiquidationQuote(ctx context.Context, v common.Address, amount *big.Int) (*big.Int, error) {
	return l.callBig(ctx, v, "getliqdationBTCCAmount", amount)
}

// flatten turns an unpacked ABI tuple (an anonymous struct) into its
// positional elements.
func flatten(x any) borrow.Tuple {
	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	t := make(borrow.Tuple, rv.NumField())
	for i := range t {
		t[i] = rv.Field(i).Interface()
	}
	return t
}

func bigAt(vals []any, i int) *big.Int {
	if i >= len(vals) {
		return nil
	}
	b, _ := vals[i].(*big.Int)
	return b
}

func toUint64(n *big.Int) (uint64, error) {
	if n == nil {
		return 0, nil
	}
	if n.Sign() < 0 || !n.IsUint64() {
		return 0, ErrIndexOverflow
	}
	return n.Uint64(), nil
}
