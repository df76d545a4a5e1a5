package service

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/config"
	"github.com/fleshka4/amm-router/internal/dexmath"
	"github.com/fleshka4/amm-router/internal/factory"
	"github.com/fleshka4/amm-router/internal/infra/uniswap"
	"github.com/fleshka4/amm-router/internal/ledger"
	"github.com/fleshka4/amm-router/internal/metrics"
	"github.com/fleshka4/amm-router/internal/pair"
	"github.com/fleshka4/amm-router/internal/router"
	"github.com/fleshka4/amm-router/internal/token"
)

// genesisWindow is the deadline slack given to liquidity seeded at startup.
const genesisWindow = time.Hour

// BootstrapOptions are the optional dependencies of Bootstrap.
type BootstrapOptions struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Clock   func() time.Time
	// Chain is used to mirror cfg.Mirror.Pairs. Mirroring is skipped when nil.
	Chain ChainReader
}

type genesis struct {
	ledger   *ledger.Ledger
	router   *router.Router
	operator common.Address
	chainID  *big.Int

	bySymbol map[string]*token.ERC20
	tokens   []common.Address

	log *zap.Logger
}

// Bootstrap deploys the wrapped native token, the factory, the router and
// the genesis tokens, funds accounts, seeds pools and mirrors on-chain pairs.
func Bootstrap(ctx context.Context, cfg config.Config, opts BootstrapOptions) (*ExchangeService, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if !common.IsHexAddress(cfg.AMM.Operator) {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "amm.operator must be a hex address")
	}
	operator := common.HexToAddress(cfg.AMM.Operator)
	chainID := big.NewInt(cfg.ChainID)

	ledgerOpts := []ledger.Option{ledger.WithLogger(log.Named("ledger"))}
	if opts.Clock != nil {
		ledgerOpts = append(ledgerOpts, ledger.WithClock(opts.Clock))
	}
	l := ledger.New(ledgerOpts...)

	pairOpts := []pair.Option{pair.WithLogger(log.Named("pair"))}
	if cfg.AMM.MinimumLiquidity > 0 {
		pairOpts = append(pairOpts, pair.WithMinimumLiquidity(cfg.AMM.MinimumLiquidity))
	}
	routerOpts := []router.Option{router.WithLogger(log.Named("router"))}
	if opts.Metrics != nil {
		pairOpts = append(pairOpts, pair.WithObserver(opts.Metrics))
		routerOpts = append(routerOpts, router.WithRecorder(opts.Metrics))
	}

	g := &genesis{
		ledger:   l,
		operator: operator,
		chainID:  chainID,
		bySymbol: make(map[string]*token.ERC20),
		log:      log.Named("genesis"),
	}

	err := l.Execute(ctx, operator, func(tx *ledger.Tx) error {
		w, err := token.DeployWrappedNative(tx, chainID)
		if err != nil {
			return errors.Wrap(err, "token.DeployWrappedNative")
		}
		f, err := factory.Deploy(tx, operator, chainID,
			factory.WithPairOptions(pairOpts...),
			factory.WithLogger(log.Named("factory")))
		if err != nil {
			return errors.Wrap(err, "factory.Deploy")
		}
		if g.router, err = router.Deploy(tx, f, w, routerOpts...); err != nil {
			return errors.Wrap(err, "router.Deploy")
		}
		g.register(w.ERC20)

		for _, tc := range cfg.Genesis.Tokens {
			if err := g.deployToken(tx, tc); err != nil {
				return errors.Wrapf(err, "token %s", tc.Symbol)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "deploy")
	}
	g.log.Info("contracts deployed",
		zap.Stringer("router", g.router.Address()),
		zap.Stringer("factory", g.router.Factory().Address()),
		zap.Stringer("wnative", g.router.WrappedNative().Address()))

	var combined error
	for _, acc := range cfg.Genesis.Accounts {
		combined = multierr.Append(combined, errors.Wrapf(g.fund(ctx, acc), "account %s", acc.Address))
	}
	for _, p := range cfg.Genesis.Pools {
		combined = multierr.Append(combined, errors.Wrapf(g.seedPool(ctx, p), "pool %s/%s", p.TokenA, p.TokenB))
	}
	if opts.Chain != nil && len(cfg.Mirror.Pairs) > 0 {
		combined = multierr.Append(combined, errors.Wrap(g.mirror(ctx, opts.Chain, cfg.Mirror.Pairs), "mirror"))
	}
	if combined != nil {
		return nil, combined
	}

	svc := NewExchangeService(l, g.router, NewLedgerPairReader(l), log.Named("service"))
	svc.tokens = g.tokens
	return svc, nil
}

func (g *genesis) register(t *token.ERC20) {
	g.tokens = append(g.tokens, t.Address())
	if _, ok := g.bySymbol[t.Symbol()]; !ok {
		g.bySymbol[t.Symbol()] = t
	}
}

func (g *genesis) deployToken(tx *ledger.Tx, tc config.Token) error {
	if tc.Symbol == "" || tc.Symbol == config.NativeSymbol {
		return errors.Wrap(apperrors.ErrInvalidArgument, "token symbol")
	}
	if _, ok := g.bySymbol[tc.Symbol]; ok {
		return errors.Wrap(apperrors.ErrInvalidArgument, "duplicate token symbol")
	}
	name := tc.Name
	if name == "" {
		name = tc.Symbol
	}

	var (
		t   *token.ERC20
		err error
	)
	if tc.Address != "" {
		if !common.IsHexAddress(tc.Address) {
			return errors.Wrap(apperrors.ErrInvalidArgument, "token address")
		}
		t, err = token.DeployAt(tx, common.HexToAddress(tc.Address), name, tc.Symbol, tc.Decimals, g.chainID)
	} else {
		t, err = token.Deploy(tx, name, tc.Symbol, tc.Decimals, g.chainID)
	}
	if err != nil {
		return err
	}
	g.register(t)
	return nil
}

func (g *genesis) token(symbol string) (*token.ERC20, error) {
	t, ok := g.bySymbol[symbol]
	if !ok {
		return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "unknown token %q", symbol)
	}
	return t, nil
}

func (g *genesis) deadline() uint64 {
	return uint64(g.ledger.Now().Add(genesisWindow).Unix())
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 || !dexmath.FitsU256(v) {
		return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "bad amount %q", s)
	}
	return v, nil
}

// fund credits balances to an account and optionally approves the router
// for every known token on its behalf.
func (g *genesis) fund(ctx context.Context, acc config.Account) error {
	if !common.IsHexAddress(acc.Address) {
		return errors.Wrap(apperrors.ErrInvalidArgument, "account address")
	}
	addr := common.HexToAddress(acc.Address)

	err := g.ledger.Execute(ctx, g.operator, func(tx *ledger.Tx) error {
		for symbol, raw := range acc.Balances {
			amount, err := parseAmount(raw)
			if err != nil {
				return err
			}
			if symbol == config.NativeSymbol {
				tx.MintNative(addr, amount)
				continue
			}
			t, err := g.token(symbol)
			if err != nil {
				return err
			}
			if err := t.Mint(tx, addr, amount); err != nil {
				return errors.Wrapf(err, "mint %s", symbol)
			}
		}
		return nil
	})
	if err != nil || !acc.ApproveRouter {
		return err
	}

	return g.ledger.Execute(ctx, addr, func(tx *ledger.Tx) error {
		for _, t := range g.bySymbol {
			if err := t.Approve(tx, g.router.Address(), dexmath.MaxU256()); err != nil {
				return errors.Wrapf(err, "approve %s", t.Symbol())
			}
		}
		return nil
	})
}

// provision mints amount of t to the operator and approves the router for it.
func (g *genesis) provision(tx *ledger.Tx, t *token.ERC20, amount *big.Int) error {
	if err := t.Mint(tx, g.operator, amount); err != nil {
		return errors.Wrapf(err, "mint %s", t.Symbol())
	}
	allowance := new(big.Int).Add(t.Allowance(g.operator, g.router.Address()), amount)
	return t.Approve(tx, g.router.Address(), allowance)
}

func (g *genesis) seedPool(ctx context.Context, p config.Pool) error {
	amountA, err := parseAmount(p.AmountA)
	if err != nil {
		return err
	}
	amountB, err := parseAmount(p.AmountB)
	if err != nil {
		return err
	}

	symbolA, symbolB := p.TokenA, p.TokenB
	if symbolA == config.NativeSymbol {
		symbolA, symbolB = symbolB, symbolA
		amountA, amountB = amountB, amountA
	}
	tokenA, err := g.token(symbolA)
	if err != nil {
		return err
	}

	if symbolB == config.NativeSymbol {
		err = g.ledger.Execute(ctx, g.operator, func(tx *ledger.Tx) error {
			tx.MintNative(g.operator, amountB)
			return g.provision(tx, tokenA, amountA)
		})
		if err != nil {
			return err
		}
		_, err = g.router.AddLiquidityCSPR(ctx, g.operator, amountB, router.AddLiquidityCSPRRequest{
			Token:              tokenA.Address(),
			AmountTokenDesired: amountA,
			AmountTokenMin:     new(big.Int),
			AmountCSPRMin:      new(big.Int),
			To:                 g.operator,
			Deadline:           g.deadline(),
		})
		return err
	}

	tokenB, err := g.token(symbolB)
	if err != nil {
		return err
	}
	return g.addLiquidity(ctx, tokenA, tokenB, amountA, amountB)
}

func (g *genesis) addLiquidity(ctx context.Context, tokenA, tokenB *token.ERC20, amountA, amountB *big.Int) error {
	err := g.ledger.Execute(ctx, g.operator, func(tx *ledger.Tx) error {
		if err := g.provision(tx, tokenA, amountA); err != nil {
			return err
		}
		return g.provision(tx, tokenB, amountB)
	})
	if err != nil {
		return err
	}
	res, err := g.router.AddLiquidity(ctx, g.operator, router.AddLiquidityRequest{
		TokenA:         tokenA.Address(),
		TokenB:         tokenB.Address(),
		AmountADesired: amountA,
		AmountBDesired: amountB,
		AmountAMin:     new(big.Int),
		AmountBMin:     new(big.Int),
		To:             g.operator,
		Deadline:       g.deadline(),
	})
	if err != nil {
		return err
	}
	g.log.Info("pool seeded",
		zap.String("tokenA", tokenA.Symbol()),
		zap.String("tokenB", tokenB.Symbol()),
		zap.Stringer("liquidity", res.Liquidity))
	return nil
}

// mirror recreates on-chain pairs locally: tokens keep their on-chain
// addresses and the local pool starts with the on-chain reserves.
func (g *genesis) mirror(ctx context.Context, chain ChainReader, pairs []string) error {
	addrs := make([]common.Address, 0, len(pairs))
	for _, p := range pairs {
		if !common.IsHexAddress(p) {
			return errors.Wrapf(apperrors.ErrInvalidArgument, "mirror pair %q", p)
		}
		addrs = append(addrs, common.HexToAddress(p))
	}

	snapshots, err := chain.GetPairSnapshots(ctx, addrs)
	if err != nil {
		return errors.Wrap(apperrors.ErrPairRead, err.Error())
	}

	var combined error
	for _, s := range snapshots {
		combined = multierr.Append(combined, errors.Wrapf(g.mirrorPair(ctx, s), "pair %s", s.Pair.Hex()))
	}
	return combined
}

func (g *genesis) mirrorPair(ctx context.Context, s uniswap.PairSnapshot) error {
	var token0, token1 *token.ERC20
	err := g.ledger.Execute(ctx, g.operator, func(tx *ledger.Tx) error {
		var err error
		if token0, err = g.ensureToken(tx, s.Token0); err != nil {
			return err
		}
		token1, err = g.ensureToken(tx, s.Token1)
		return err
	})
	if err != nil {
		return err
	}
	return g.addLiquidity(ctx, token0, token1, s.Reserve0, s.Reserve1)
}

func (g *genesis) ensureToken(tx *ledger.Tx, info uniswap.TokenInfo) (*token.ERC20, error) {
	if c, ok := g.ledger.Contract(info.Address); ok {
		t, ok := c.(*token.ERC20)
		if !ok {
			return nil, errors.Wrapf(apperrors.ErrContractNotFound, "%s is not a token", info.Address.Hex())
		}
		return t, nil
	}
	t, err := token.DeployAt(tx, info.Address, info.Symbol, info.Symbol, info.Decimals, g.chainID)
	if err != nil {
		return nil, err
	}
	tx.OnCommit(func() { g.register(t) })
	return t, nil
}
