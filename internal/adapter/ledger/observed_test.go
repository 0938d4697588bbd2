package ledger

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"stablevault-backend/internal/infrastructure/metrics"
	"stablevault-backend/internal/testutil/ledgermock"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserved_CountsOutcomes(t *testing.T) {
	m := metrics.Vault()
	ok := m.LedgerReadsVec().WithLabelValues("price", "ok")
	failed := m.LedgerReadsVec().WithLabelValues("record_index", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	boom := errors.New("rpc down")
	o := Observe(&ledgermock.Ledger{
		PriceFn: func(context.Context, common.Address) (*big.Int, error) { return big.NewInt(5), nil },
		RecordIndexFn: func(context.Context, common.Address, common.Address) (uint64, error) {
			return 0, boom
		},
	}, m)

	p, err := o.Price(context.Background(), common.Address{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Int64())

	_, err = o.RecordIndex(context.Background(), common.Address{}, common.Address{})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestObserved_NilMetrics(t *testing.T) {
	o := Observe(&ledgermock.Ledger{}, nil)
	_, err := o.Fee(context.Background(), common.Address{})
	assert.ErrorIs(t, err, context.Canceled)
}
