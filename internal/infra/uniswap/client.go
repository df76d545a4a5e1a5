package uniswap

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// pairABIJSON covers the pair getters plus the ERC20 metadata of its tokens.
const pairABIJSON = `[
	{"inputs":[],"name":"token0","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"token1","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getReserves","outputs":[{"internalType":"uint112","name":"_reserve0","type":"uint112"},{"internalType":"uint112","name":"_reserve1","type":"uint112"},{"internalType":"uint32","name":"_blockTimestampLast","type":"uint32"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"symbol","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`

// maxParallelPairs bounds the pairs read at once by GetPairSnapshots.
const maxParallelPairs = 8

// Client reads Uniswap V2 pairs and their tokens from an Ethereum node.
type Client interface {
	GetPairTokens(ctx context.Context, pair common.Address) (common.Address, common.Address, error)
	GetPairReserves(ctx context.Context, pair common.Address) (*big.Int, *big.Int, error)
	// GetTokenInfo returns the symbol and decimals of an ERC20 token.
	GetTokenInfo(ctx context.Context, token common.Address) (TokenInfo, error)
	// GetPairSnapshots reads tokens, token metadata and reserves of every pair.
	GetPairSnapshots(ctx context.Context, pairs []common.Address) ([]PairSnapshot, error)
}

// TokenInfo is ERC20 metadata.
type TokenInfo struct {
	Address  common.Address
	Symbol   string
	Decimals uint8
}

// PairSnapshot is the state of one on-chain pair.
type PairSnapshot struct {
	Pair     common.Address
	Token0   TokenInfo
	Token1   TokenInfo
	Reserve0 *big.Int
	Reserve1 *big.Int
}

// EthCaller represents interface for calling contracts.
type EthCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type chainReader struct {
	caller      EthCaller
	abi         abi.ABI
	callTimeout time.Duration
}

// NewClient dials rpcURL and returns a Client. Every contract call is bounded
// by callTimeout when it is positive.
func NewClient(rpcURL string, callTimeout time.Duration) (Client, error) {
	caller, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "ethclient.Dial")
	}
	return newChainReader(caller, callTimeout)
}

func newChainReader(caller EthCaller, callTimeout time.Duration) (*chainReader, error) {
	parsed, err := abi.JSON(strings.NewReader(pairABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}
	return &chainReader{caller: caller, abi: parsed, callTimeout: callTimeout}, nil
}

// call invokes a no-argument view method of the contract at to.
func (c *chainReader) call(ctx context.Context, to common.Address, method string) ([]any, error) {
	data, err := c.abi.Pack(method)
	if err != nil {
		return nil, errors.Wrap(err, "c.abi.Pack")
	}
	if c.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.callTimeout)
		defer cancel()
	}

	raw, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "%s.%s", to.Hex(), method)
	}
	out, err := c.abi.Unpack(method, raw)
	if err != nil {
		return nil, errors.Wrap(err, "c.abi.Unpack")
	}
	return out, nil
}

// callOne invokes a single-output method and asserts the output type.
func callOne[T any](ctx context.Context, c *chainReader, to common.Address, method string) (T, error) {
	var zero T
	out, err := c.call(ctx, to, method)
	if err != nil {
		return zero, err
	}
	if len(out) == 0 {
		return zero, errors.Errorf("%s returned nothing", method)
	}
	v, ok := out[0].(T)
	if !ok {
		return zero, errors.Errorf("%s returned %T", method, out[0])
	}
	return v, nil
}

// GetPairTokens returns token0 and token1 of pair. Both getters run concurrently.
func (c *chainReader) GetPairTokens(ctx context.Context, pair common.Address) (common.Address, common.Address, error) {
	var token0, token1 common.Address
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		token0, err = callOne[common.Address](gctx, c, pair, "token0")
		return err
	})
	g.Go(func() (err error) {
		token1, err = callOne[common.Address](gctx, c, pair, "token1")
		return err
	})
	if err := g.Wait(); err != nil {
		return common.Address{}, common.Address{}, errors.Wrap(err, "pair tokens")
	}
	return token0, token1, nil
}

// GetPairReserves returns reserve0 and reserve1 of pair.
func (c *chainReader) GetPairReserves(ctx context.Context, pair common.Address) (*big.Int, *big.Int, error) {
	out, err := c.call(ctx, pair, "getReserves")
	if err != nil {
		return nil, nil, err
	}
	if len(out) < 2 {
		return nil, nil, errors.Errorf("getReserves returned %d values", len(out))
	}
	reserve0, ok0 := out[0].(*big.Int)
	reserve1, ok1 := out[1].(*big.Int)
	if !ok0 || !ok1 {
		return nil, nil, errors.Errorf("getReserves returned %T, %T", out[0], out[1])
	}
	return reserve0, reserve1, nil
}

func (c *chainReader) GetTokenInfo(ctx context.Context, token common.Address) (TokenInfo, error) {
	info := TokenInfo{Address: token}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		info.Symbol, err = callOne[string](gctx, c, token, "symbol")
		return err
	})
	g.Go(func() (err error) {
		info.Decimals, err = callOne[uint8](gctx, c, token, "decimals")
		return err
	})
	if err := g.Wait(); err != nil {
		return TokenInfo{}, errors.Wrap(err, "token info")
	}
	return info, nil
}

// GetPairSnapshots reads pairs concurrently. Every failed pair is reported in
// the combined error and no partial result is returned.
func (c *chainReader) GetPairSnapshots(ctx context.Context, pairs []common.Address) ([]PairSnapshot, error) {
	snapshots := make([]PairSnapshot, len(pairs))
	errs := make([]error, len(pairs))

	var g errgroup.Group
	g.SetLimit(maxParallelPairs)
	for i, pair := range pairs {
		g.Go(func() error {
			snapshots[i], errs[i] = c.snapshot(ctx, pair)
			return nil
		})
	}
	_ = g.Wait()

	if err := multierr.Combine(errs...); err != nil {
		return nil, errors.Wrap(err, "pair snapshots")
	}
	return snapshots, nil
}

func (c *chainReader) snapshot(ctx context.Context, pair common.Address) (PairSnapshot, error) {
	s := PairSnapshot{Pair: pair}
	token0, token1, err := c.GetPairTokens(ctx, pair)
	if err != nil {
		return s, errors.Wrapf(err, "pair %s", pair.Hex())
	}
	if s.Reserve0, s.Reserve1, err = c.GetPairReserves(ctx, pair); err != nil {
		return s, errors.Wrapf(err, "pair %s", pair.Hex())
	}
	if s.Token0, err = c.GetTokenInfo(ctx, token0); err != nil {
		return s, errors.Wrapf(err, "token0 of %s", pair.Hex())
	}
	if s.Token1, err = c.GetTokenInfo(ctx, token1); err != nil {
		return s, errors.Wrapf(err, "token1 of %s", pair.Hex())
	}
	return s, nil
}
