package factory

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/ledger"
	"github.com/fleshka4/amm-router/internal/pair"
	"github.com/fleshka4/amm-router/internal/uniswapv2"
)

type pairKey struct {
	a common.Address
	b common.Address
}

// Factory creates pairs at deterministic addresses and indexes them.
type Factory struct {
	address common.Address
	ledger  *ledger.Ledger
	chainID *big.Int

	feeTo       *ledger.Cell[common.Address]
	feeToSetter *ledger.Cell[common.Address]

	pairs    *ledger.Map[pairKey, common.Address]
	allPairs *ledger.List[common.Address]

	pairOpts []pair.Option
	log      *zap.Logger
}

// Option configures a Factory.
type Option func(*Factory)

// WithPairOptions sets the options applied to every created pair.
func WithPairOptions(opts ...pair.Option) Option {
	return func(f *Factory) {
		f.pairOpts = append(f.pairOpts, opts...)
	}
}

// WithLogger sets the factory logger.
func WithLogger(log *zap.Logger) Option {
	return func(f *Factory) {
		f.log = log
	}
}

// Deploy deploys a factory from the frame's address.
func Deploy(tx *ledger.Tx, feeToSetter common.Address, chainID *big.Int, opts ...Option) (*Factory, error) {
	var f *Factory
	_, err := tx.Deploy(func(addr common.Address) (ledger.Contract, error) {
		f = &Factory{
			address: addr,
			ledger:  tx.Ledger(),
			chainID: chainID,

			feeTo:       ledger.NewCell(common.Address{}),
			feeToSetter: ledger.NewCell(feeToSetter),

			pairs:    ledger.NewMap[pairKey, common.Address](),
			allPairs: ledger.NewList[common.Address](),
			log:      zap.NewNop(),
		}
		for _, opt := range opts {
			opt(f)
		}
		return f, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "tx.Deploy")
	}
	return f, nil
}

func (f *Factory) Address() common.Address { return f.address }

// FeeTo returns the protocol fee recipient. The protocol fee is never charged.
func (f *Factory) FeeTo() common.Address       { return f.feeTo.Get() }
func (f *Factory) FeeToSetter() common.Address { return f.feeToSetter.Get() }

// GetPair returns the pair of tokenA and tokenB in either order.
func (f *Factory) GetPair(tokenA, tokenB common.Address) (common.Address, bool) {
	return f.pairs.Get(pairKey{a: tokenA, b: tokenB})
}

// AllPairs returns pair addresses in creation order.
func (f *Factory) AllPairs() []common.Address {
	return f.allPairs.Items()
}

// AllPairsLength returns the number of pairs created so far.
func (f *Factory) AllPairsLength() int {
	return f.allPairs.Len()
}

// CreatePair deploys the pair of tokenA and tokenB.
func (f *Factory) CreatePair(tx *ledger.Tx, tokenA, tokenB common.Address) (*pair.Pair, error) {
	in, err := tx.Call(f.address, nil)
	if err != nil {
		return nil, err
	}
	token0, token1, err := uniswapv2.SortTokens(tokenA, tokenB)
	if err != nil {
		return nil, err
	}
	if _, ok := f.GetPair(token0, token1); ok {
		return nil, errors.Wrapf(apperrors.ErrPairExists, "%s/%s", token0.Hex(), token1.Hex())
	}

	addr, err := uniswapv2.PairFor(f.address, token0, token1)
	if err != nil {
		return nil, err
	}
	var p *pair.Pair
	err = in.DeployAt(addr, func(addr common.Address) (ledger.Contract, error) {
		p = pair.New(addr, f.address, f.chainID, f.pairOpts...)
		return p, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "in.DeployAt")
	}
	if err := p.Initialize(in, token0, token1); err != nil {
		return nil, errors.Wrap(err, "p.Initialize")
	}

	f.pairs.Set(in, pairKey{a: token0, b: token1}, addr)
	f.pairs.Set(in, pairKey{a: token1, b: token0}, addr)
	f.allPairs.Append(in, addr)

	in.OnCommit(func() {
		f.log.Info("pair created",
			zap.Stringer("token0", token0),
			zap.Stringer("token1", token1),
			zap.Stringer("pair", addr),
			zap.Int("index", f.allPairs.Len()))
	})
	return p, nil
}

func (f *Factory) SetFeeTo(tx *ledger.Tx, feeTo common.Address) error {
	in, err := tx.Call(f.address, nil)
	if err != nil {
		return err
	}
	if in.Caller() != f.feeToSetter.Get() {
		return errors.Wrap(apperrors.ErrForbidden, "setFeeTo")
	}
	f.feeTo.Set(in, feeTo)
	return nil
}

func (f *Factory) SetFeeToSetter(tx *ledger.Tx, setter common.Address) error {
	in, err := tx.Call(f.address, nil)
	if err != nil {
		return err
	}
	if in.Caller() != f.feeToSetter.Get() {
		return errors.Wrap(apperrors.ErrForbidden, "setFeeToSetter")
	}
	f.feeToSetter.Set(in, setter)
	return nil
}

// PairOf resolves the deployed pair of tokenA and tokenB.
func (f *Factory) PairOf(tokenA, tokenB common.Address) (*pair.Pair, error) {
	if _, _, err := uniswapv2.SortTokens(tokenA, tokenB); err != nil {
		return nil, err
	}
	addr, ok := f.GetPair(tokenA, tokenB)
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrPairNotFound, "%s/%s", tokenA.Hex(), tokenB.Hex())
	}
	return pair.At(f.ledger, addr)
}

// Pool implements uniswapv2.PoolLocator.
func (f *Factory) Pool(tokenA, tokenB common.Address) (uniswapv2.Pool, error) {
	p, err := f.PairOf(tokenA, tokenB)
	if err != nil {
		return nil, err
	}
	return p, nil
}
