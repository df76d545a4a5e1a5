package metrics

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCall(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg, "amm")

	m.ObserveCall("swapExactTokensForTokens", nil, time.Millisecond)
	m.ObserveCall("swapExactTokensForTokens", nil, time.Millisecond)
	m.ObserveCall("swapExactTokensForTokens", errors.New("expired"), time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.Calls.WithLabelValues("swapExactTokensForTokens", resultOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Calls.WithLabelValues("swapExactTokensForTokens", resultError)), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.CallDuration))
}

func TestPairObserver(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg, "amm")
	pair := common.HexToAddress("0x0000000000000000000000000000000000000abc")

	m.Synced(pair, big.NewInt(300), big.NewInt(400))
	m.Swapped(pair, big.NewInt(1), nil, nil, big.NewInt(1))
	m.Swapped(pair, big.NewInt(1), nil, nil, big.NewInt(1))

	assert.InDelta(t, 300, testutil.ToFloat64(m.Reserves.WithLabelValues(pair.Hex(), "0")), 0)
	assert.InDelta(t, 400, testutil.ToFloat64(m.Reserves.WithLabelValues(pair.Hex(), "1")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.Swaps.WithLabelValues(pair.Hex())), 0)

	huge, ok := new(big.Int).SetString("1000000000000000000000000000000", 10)
	require.True(t, ok)
	m.Synced(pair, huge, huge)
	assert.InEpsilon(t, 1e30, testutil.ToFloat64(m.Reserves.WithLabelValues(pair.Hex(), "0")), 1e-9)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	New(reg, "amm")
	require.Panics(t, func() { New(reg, "amm") })
	require.NotPanics(t, func() { New(reg, "other") })
}
