package router

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/factory"
	"github.com/fleshka4/amm-router/internal/ledger"
	"github.com/fleshka4/amm-router/internal/token"
	"github.com/fleshka4/amm-router/internal/uniswapv2"
)

// Recorder observes router calls.
type Recorder interface {
	ObserveCall(op string, err error, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCall(string, error, time.Duration) {}

// Router is a stateless entry point for liquidity and swaps over pairs
// created by one factory. Every mutating method runs as one ledger call and
// either applies in full or not at all.
type Router struct {
	address common.Address
	ledger  *ledger.Ledger
	factory *factory.Factory
	wnative *token.WrappedNative

	log     *zap.Logger
	metrics Recorder
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Router) {
		r.log = log
	}
}

// WithRecorder sets the call metrics recorder.
func WithRecorder(rec Recorder) Option {
	return func(r *Router) {
		r.metrics = rec
	}
}

// Deploy deploys a router bound to f and the wrapped native token w.
func Deploy(tx *ledger.Tx, f *factory.Factory, w *token.WrappedNative, opts ...Option) (*Router, error) {
	if f == nil || w == nil {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "factory and wrapped native are required")
	}
	var r *Router
	_, err := tx.Deploy(func(addr common.Address) (ledger.Contract, error) {
		r = &Router{
			address: addr,
			ledger:  tx.Ledger(),
			factory: f,
			wnative: w,
			log:     zap.NewNop(),
			metrics: nopRecorder{},
		}
		for _, opt := range opts {
			opt(r)
		}
		return r, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "tx.Deploy")
	}
	return r, nil
}

// Address is where the router is deployed on the ledger.
func (r *Router) Address() common.Address { return r.address }

// Factory is the pair factory the router resolves paths through.
func (r *Router) Factory() *factory.Factory { return r.factory }

// WrappedNative is the WCSPR token used for native legs of a path.
func (r *Router) WrappedNative() *token.WrappedNative { return r.wnative }

// execute runs fn inside the router's frame of a new ledger call from caller
// with value attached.
func (r *Router) execute(ctx context.Context, op string, caller common.Address, value *big.Int,
	fn func(in *ledger.Tx) error,
) error {
	start := time.Now()
	err := r.ledger.Execute(ctx, caller, func(tx *ledger.Tx) error {
		in, err := tx.Call(r.address, value)
		if err != nil {
			return err
		}
		return fn(in)
	})
	elapsed := time.Since(start)
	r.metrics.ObserveCall(op, err, elapsed)
	if err != nil {
		r.log.Info("router call failed",
			zap.String("op", op),
			zap.Stringer("caller", caller),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return errors.Wrap(err, op)
	}
	r.log.Debug("router call", zap.String("op", op), zap.Stringer("caller", caller), zap.Duration("elapsed", elapsed))
	return nil
}

func ensure(in *ledger.Tx, deadline uint64) error {
	if now := uint64(in.Time().Unix()); now > deadline {
		return errors.Wrapf(apperrors.ErrExpired, "now %d, deadline %d", now, deadline)
	}
	return nil
}

func nonNegative(amounts ...*big.Int) error {
	for _, a := range amounts {
		if a == nil || a.Sign() < 0 {
			return errors.Wrap(apperrors.ErrInvalidArgument, "amounts must be non-negative")
		}
	}
	return nil
}

func (r *Router) token(addr common.Address) (token.FungibleToken, error) {
	t, err := token.At(r.ledger, addr)
	if err != nil {
		return nil, errors.Wrapf(err, "token %s", addr.Hex())
	}
	return t, nil
}

// Quote returns the amount of B equivalent to amountA at the given reserves.
func (r *Router) Quote(amountA, reserveA, reserveB *big.Int) (*big.Int, error) {
	return uniswapv2.Quote(amountA, reserveA, reserveB)
}

// GetAmountOut returns the output of a single hop after fees.
func (r *Router) GetAmountOut(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	return uniswapv2.GetAmountOut(amountIn, reserveIn, reserveOut)
}

// GetAmountIn returns the input a single hop needs to produce amountOut.
func (r *Router) GetAmountIn(amountOut, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	return uniswapv2.GetAmountIn(amountOut, reserveIn, reserveOut)
}

// GetAmountsOut quotes every hop of path for an exact input.
func (r *Router) GetAmountsOut(amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	var amounts []*big.Int
	err := r.ledger.View(func() error {
		var err error
		amounts, err = uniswapv2.GetAmountsOut(r.factory, amountIn, path)
		return err
	})
	return amounts, err
}

// GetAmountsIn quotes every hop of path for an exact output.
func (r *Router) GetAmountsIn(amountOut *big.Int, path []common.Address) ([]*big.Int, error) {
	var amounts []*big.Int
	err := r.ledger.View(func() error {
		var err error
		amounts, err = uniswapv2.GetAmountsIn(r.factory, amountOut, path)
		return err
	})
	return amounts, err
}

// GetReserves returns the reserves of the tokenA/tokenB pair in that orientation.
func (r *Router) GetReserves(tokenA, tokenB common.Address) (*big.Int, *big.Int, error) {
	var reserveA, reserveB *big.Int
	err := r.ledger.View(func() error {
		var err error
		reserveA, reserveB, err = uniswapv2.GetReserves(r.factory, tokenA, tokenB)
		return err
	})
	return reserveA, reserveB, err
}
