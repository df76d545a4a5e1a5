package factory

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/ledger"
	"github.com/fleshka4/amm-router/internal/pair"
	"github.com/fleshka4/amm-router/internal/uniswapv2"
)

var (
	setter = common.HexToAddress("0x00000000000000000000000000000000000000ee")
	alice  = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	tokenA = common.HexToAddress("0x0000000000000000000000000000000000000a0a")
	tokenB = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	tokenC = common.HexToAddress("0x0000000000000000000000000000000000000c0c")
)

func deploy(t *testing.T, opts ...Option) (*ledger.Ledger, *Factory) {
	t.Helper()

	l := ledger.New()
	var f *Factory
	require.NoError(t, l.Execute(context.Background(), setter, func(tx *ledger.Tx) error {
		var err error
		f, err = Deploy(tx, setter, big.NewInt(1), opts...)
		return err
	}))
	return l, f
}

func createPair(l *ledger.Ledger, f *Factory, a, b common.Address) (*pair.Pair, error) {
	var p *pair.Pair
	err := l.Execute(context.Background(), alice, func(tx *ledger.Tx) error {
		var err error
		p, err = f.CreatePair(tx, a, b)
		return err
	})
	return p, err
}

func TestCreatePair(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	l, f := deploy(t, WithLogger(zap.New(core)), WithPairOptions(pair.WithMinimumLiquidity(10)))

	p, err := createPair(l, f, tokenB, tokenA)
	require.NoError(t, err)

	want, err := uniswapv2.PairFor(f.Address(), tokenA, tokenB)
	require.NoError(t, err)
	require.Equal(t, want, p.Address())
	require.Equal(t, tokenA, p.Token0())
	require.Equal(t, tokenB, p.Token1())
	require.Equal(t, f.Address(), p.Factory())
	require.Equal(t, int64(10), p.MinimumLiquidity().Int64())

	ab, ok := f.GetPair(tokenA, tokenB)
	require.True(t, ok)
	ba, ok := f.GetPair(tokenB, tokenA)
	require.True(t, ok)
	require.Equal(t, ab, ba)
	require.Equal(t, []common.Address{want}, f.AllPairs())
	require.Equal(t, 1, f.AllPairsLength())
	require.Equal(t, 1, logs.FilterMessage("pair created").Len())

	require.NoError(t, l.View(func() error {
		got, err := f.PairOf(tokenB, tokenA)
		require.NoError(t, err)
		require.Same(t, p, got)

		pool, err := f.Pool(tokenA, tokenB)
		require.NoError(t, err)
		require.Equal(t, tokenA, pool.Token0())
		return nil
	}))
}

func TestCreatePair_Errors(t *testing.T) {
	t.Parallel()

	l, f := deploy(t)
	_, err := createPair(l, f, tokenA, tokenB)
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b common.Address
		want error
	}{
		{"exists", tokenA, tokenB, apperrors.ErrPairExists},
		{"exists reversed", tokenB, tokenA, apperrors.ErrPairExists},
		{"identical", tokenC, tokenC, apperrors.ErrIdenticalAddresses},
		{"zero address", tokenC, common.Address{}, apperrors.ErrZeroAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createPair(l, f, tt.a, tt.b)
			require.ErrorIs(t, err, tt.want)
		})
	}
	require.Equal(t, 1, f.AllPairsLength())
}

func TestPairOf_NotFound(t *testing.T) {
	t.Parallel()

	l, f := deploy(t)
	require.NoError(t, l.View(func() error {
		_, err := f.PairOf(tokenA, tokenC)
		require.ErrorIs(t, err, apperrors.ErrPairNotFound)
		return nil
	}))
}

func TestFeeSetters(t *testing.T) {
	t.Parallel()

	l, f := deploy(t)
	require.Equal(t, setter, f.FeeToSetter())
	require.Equal(t, common.Address{}, f.FeeTo())

	err := l.Execute(context.Background(), alice, func(tx *ledger.Tx) error {
		return f.SetFeeTo(tx, alice)
	})
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, l.Execute(context.Background(), setter, func(tx *ledger.Tx) error {
		if err := f.SetFeeTo(tx, alice); err != nil {
			return err
		}
		return f.SetFeeToSetter(tx, alice)
	}))
	require.Equal(t, alice, f.FeeTo())
	require.Equal(t, alice, f.FeeToSetter())

	err = l.Execute(context.Background(), setter, func(tx *ledger.Tx) error {
		return f.SetFeeToSetter(tx, setter)
	})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}
