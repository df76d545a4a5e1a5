package pair

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/dexmath"
	"github.com/fleshka4/amm-router/internal/ledger"
	"github.com/fleshka4/amm-router/internal/token"
)

// DefaultMinimumLiquidity is the amount of shares locked forever on the
// first deposit.
const DefaultMinimumLiquidity = 1000

var (
	// q112 is 2^112, the UQ112x112 fixed-point scale of the price accumulators.
	q112 = new(big.Int).Lsh(big.NewInt(1), 112)

	feeAdjust = big.NewInt(1000)
	feeIn     = big.NewInt(3)
)

// Observer receives committed pair state changes.
type Observer interface {
	Synced(pair common.Address, reserve0, reserve1 *big.Int)
	Swapped(pair common.Address, amount0In, amount1In, amount0Out, amount1Out *big.Int)
}

type nopObserver struct{}

func (nopObserver) Synced(common.Address, *big.Int, *big.Int)                         {}
func (nopObserver) Swapped(common.Address, *big.Int, *big.Int, *big.Int, *big.Int) {}

// Pair holds the reserves of two tokens and issues liquidity shares
// against them. Shares are themselves an ERC20 living at the pair's address.
type Pair struct {
	*token.ERC20

	factory common.Address
	token0  *ledger.Cell[common.Address]
	token1  *ledger.Cell[common.Address]

	reserve0           *ledger.Cell[*big.Int]
	reserve1           *ledger.Cell[*big.Int]
	blockTimestampLast *ledger.Cell[uint32]

	price0CumulativeLast *ledger.Cell[*big.Int]
	price1CumulativeLast *ledger.Cell[*big.Int]

	minimumLiquidity *big.Int
	locked           bool

	log      *zap.Logger
	observer Observer
}

// Option configures a Pair.
type Option func(*Pair)

// WithMinimumLiquidity overrides the number of shares locked on the first deposit.
func WithMinimumLiquidity(v int64) Option {
	return func(p *Pair) {
		p.minimumLiquidity = big.NewInt(v)
	}
}

// WithLogger sets the pair logger.
func WithLogger(log *zap.Logger) Option {
	return func(p *Pair) {
		p.log = log
	}
}

// WithObserver sets the receiver of committed sync and swap events.
func WithObserver(o Observer) Option {
	return func(p *Pair) {
		p.observer = o
	}
}

// New creates an uninitialized pair at addr owned by factory.
func New(addr, factory common.Address, chainID *big.Int, opts ...Option) *Pair {
	p := &Pair{
		ERC20:   token.NewERC20(addr, "AMM-V2 LP", "AMM-LP", 18, chainID),
		factory: factory,
		token0:  ledger.NewCell(common.Address{}),
		token1:  ledger.NewCell(common.Address{}),

		reserve0:           ledger.NewCell(new(big.Int)),
		reserve1:           ledger.NewCell(new(big.Int)),
		blockTimestampLast: ledger.NewCell(uint32(0)),

		price0CumulativeLast: ledger.NewCell(new(big.Int)),
		price1CumulativeLast: ledger.NewCell(new(big.Int)),

		minimumLiquidity: big.NewInt(DefaultMinimumLiquidity),
		log:              zap.NewNop(),
		observer:         nopObserver{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(zap.Stringer("pair", addr))
	return p
}

// Initialize sets the pair tokens. Only the factory may call it, once.
func (p *Pair) Initialize(tx *ledger.Tx, token0, token1 common.Address) error {
	in, err := tx.Call(p.Address(), nil)
	if err != nil {
		return err
	}
	if in.Caller() != p.factory {
		return errors.Wrap(apperrors.ErrForbidden, "initialize")
	}
	if p.token0.Get() != (common.Address{}) {
		return errors.Wrap(apperrors.ErrForbidden, "already initialized")
	}
	p.token0.Set(in, token0)
	p.token1.Set(in, token1)
	return nil
}

// Factory returns the address that created the pair.
func (p *Pair) Factory() common.Address { return p.factory }

// Token0 returns the smaller token of the pair.
func (p *Pair) Token0() common.Address { return p.token0.Get() }

// Token1 returns the larger token of the pair.
func (p *Pair) Token1() common.Address { return p.token1.Get() }

// MinimumLiquidity returns the number of shares locked on the first deposit.
func (p *Pair) MinimumLiquidity() *big.Int { return new(big.Int).Set(p.minimumLiquidity) }

// GetReserves returns the reserves as of the last update and its block time.
func (p *Pair) GetReserves() (*big.Int, *big.Int, uint32) {
	return new(big.Int).Set(p.reserve0.Get()), new(big.Int).Set(p.reserve1.Get()), p.blockTimestampLast.Get()
}

// Price0CumulativeLast returns the accumulated UQ112x112 price of token0 in token1.
func (p *Pair) Price0CumulativeLast() *big.Int { return new(big.Int).Set(p.price0CumulativeLast.Get()) }

// Price1CumulativeLast returns the accumulated UQ112x112 price of token1 in token0.
func (p *Pair) Price1CumulativeLast() *big.Int { return new(big.Int).Set(p.price1CumulativeLast.Get()) }

// enter opens a frame on the pair and takes the reentrancy lock. The
// returned release must be deferred.
func (p *Pair) enter(tx *ledger.Tx) (*ledger.Tx, func(), error) {
	if p.locked {
		return nil, nil, apperrors.ErrLocked
	}
	in, err := tx.Call(p.Address(), nil)
	if err != nil {
		return nil, nil, err
	}
	p.locked = true
	return in, func() { p.locked = false }, nil
}

func (p *Pair) tokens(tx *ledger.Tx) (token.FungibleToken, token.FungibleToken, error) {
	t0, err := token.At(tx.Ledger(), p.Token0())
	if err != nil {
		return nil, nil, errors.Wrap(err, "token0")
	}
	t1, err := token.At(tx.Ledger(), p.Token1())
	if err != nil {
		return nil, nil, errors.Wrap(err, "token1")
	}
	return t0, t1, nil
}

// update writes balances into reserves and advances the price accumulators
// on the first call of each block.
func (p *Pair) update(tx *ledger.Tx, balance0, balance1 *big.Int) error {
	if !dexmath.FitsU256(balance0) || !dexmath.FitsU256(balance1) {
		return errors.Wrap(apperrors.ErrOverflow, "reserves")
	}
	r0, r1, last := p.GetReserves()
	now := uint32(tx.Time().Unix())
	elapsed := now - last
	if elapsed > 0 && r0.Sign() != 0 && r1.Sign() != 0 {
		dt := new(big.Int).SetUint64(uint64(elapsed))
		p0 := new(big.Int).Mul(r1, q112)
		p0.Quo(p0, r0).Mul(p0, dt)
		p1 := new(big.Int).Mul(r0, q112)
		p1.Quo(p1, r1).Mul(p1, dt)
		p.price0CumulativeLast.Set(tx, p0.Add(p0, p.price0CumulativeLast.Get()))
		p.price1CumulativeLast.Set(tx, p1.Add(p1, p.price1CumulativeLast.Get()))
	}

	b0, b1 := new(big.Int).Set(balance0), new(big.Int).Set(balance1)
	p.reserve0.Set(tx, b0)
	p.reserve1.Set(tx, b1)
	p.blockTimestampLast.Set(tx, now)

	tx.OnCommit(func() {
		p.log.Debug("sync", zap.Stringer("reserve0", b0), zap.Stringer("reserve1", b1))
		p.observer.Synced(p.Address(), b0, b1)
	})
	return nil
}

// Mint issues shares to to for the tokens sent to the pair since the last update.
func (p *Pair) Mint(tx *ledger.Tx, to common.Address) (*big.Int, error) {
	in, release, err := p.enter(tx)
	if err != nil {
		return nil, err
	}
	defer release()

	t0, t1, err := p.tokens(in)
	if err != nil {
		return nil, err
	}
	r0, r1, _ := p.GetReserves()
	balance0 := t0.BalanceOf(p.Address())
	balance1 := t1.BalanceOf(p.Address())
	amount0 := new(big.Int).Sub(balance0, r0)
	amount1 := new(big.Int).Sub(balance1, r1)

	supply := p.TotalSupply()
	var liquidity *big.Int
	if supply.Sign() == 0 {
		liquidity = dexmath.Sqrt(new(big.Int).Mul(amount0, amount1))
		liquidity.Sub(liquidity, p.minimumLiquidity)
		if liquidity.Sign() > 0 {
			if err := p.ERC20.Mint(in, common.Address{}, p.minimumLiquidity); err != nil {
				return nil, err
			}
		}
	} else {
		l0 := new(big.Int).Mul(amount0, supply)
		l0.Quo(l0, r0)
		l1 := new(big.Int).Mul(amount1, supply)
		l1.Quo(l1, r1)
		liquidity = dexmath.Min(l0, l1)
	}
	if liquidity.Sign() <= 0 {
		return nil, errors.Wrapf(apperrors.ErrInsufficientLiquidityMinted, "deposit %s/%s", amount0, amount1)
	}
	if err := p.ERC20.Mint(in, to, liquidity); err != nil {
		return nil, err
	}
	if err := p.update(in, balance0, balance1); err != nil {
		return nil, err
	}

	in.OnCommit(func() {
		p.log.Debug("mint",
			zap.Stringer("sender", in.Caller()),
			zap.Stringer("amount0", amount0),
			zap.Stringer("amount1", amount1),
			zap.Stringer("liquidity", liquidity))
	})
	return new(big.Int).Set(liquidity), nil
}

// Burn redeems the shares held by the pair itself and pays both tokens to to.
func (p *Pair) Burn(tx *ledger.Tx, to common.Address) (*big.Int, *big.Int, error) {
	in, release, err := p.enter(tx)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	t0, t1, err := p.tokens(in)
	if err != nil {
		return nil, nil, err
	}
	self := p.Address()
	balance0 := t0.BalanceOf(self)
	balance1 := t1.BalanceOf(self)
	liquidity := p.BalanceOf(self)
	supply := p.TotalSupply()
	if supply.Sign() == 0 {
		return nil, nil, errors.Wrap(apperrors.ErrInsufficientLiquidityBurned, "empty pool")
	}

	amount0 := new(big.Int).Mul(liquidity, balance0)
	amount0.Quo(amount0, supply)
	amount1 := new(big.Int).Mul(liquidity, balance1)
	amount1.Quo(amount1, supply)
	if amount0.Sign() <= 0 || amount1.Sign() <= 0 {
		return nil, nil, errors.Wrapf(apperrors.ErrInsufficientLiquidityBurned, "burn %s shares", liquidity)
	}

	if err := p.ERC20.Burn(in, self, liquidity); err != nil {
		return nil, nil, err
	}
	if err := t0.Transfer(in, to, amount0); err != nil {
		return nil, nil, errors.Wrap(err, "token0.Transfer")
	}
	if err := t1.Transfer(in, to, amount1); err != nil {
		return nil, nil, errors.Wrap(err, "token1.Transfer")
	}
	if err := p.update(in, t0.BalanceOf(self), t1.BalanceOf(self)); err != nil {
		return nil, nil, err
	}

	in.OnCommit(func() {
		p.log.Debug("burn",
			zap.Stringer("to", to),
			zap.Stringer("amount0", amount0),
			zap.Stringer("amount1", amount1))
	})
	return amount0, amount1, nil
}

// Swap pays out the requested amounts to to and then requires the inputs
// already held by the pair to keep the fee-adjusted product from falling.
func (p *Pair) Swap(tx *ledger.Tx, amount0Out, amount1Out *big.Int, to common.Address) error {
	in, release, err := p.enter(tx)
	if err != nil {
		return err
	}
	defer release()

	if amount0Out.Sign() < 0 || amount1Out.Sign() < 0 || (amount0Out.Sign() == 0 && amount1Out.Sign() == 0) {
		return apperrors.ErrInsufficientOutputAmount
	}
	r0, r1, _ := p.GetReserves()
	if amount0Out.Cmp(r0) >= 0 || amount1Out.Cmp(r1) >= 0 {
		return errors.Wrapf(apperrors.ErrInsufficientLiquidity, "out %s/%s, reserves %s/%s", amount0Out, amount1Out, r0, r1)
	}
	if to == p.Token0() || to == p.Token1() {
		return apperrors.ErrInvalidTo
	}

	t0, t1, err := p.tokens(in)
	if err != nil {
		return err
	}
	// optimistically transfer tokens.
	if amount0Out.Sign() > 0 {
		if err := t0.Transfer(in, to, amount0Out); err != nil {
			return errors.Wrap(err, "token0.Transfer")
		}
	}
	if amount1Out.Sign() > 0 {
		if err := t1.Transfer(in, to, amount1Out); err != nil {
			return errors.Wrap(err, "token1.Transfer")
		}
	}

	self := p.Address()
	balance0 := t0.BalanceOf(self)
	balance1 := t1.BalanceOf(self)
	amount0In := inferredInput(balance0, r0, amount0Out)
	amount1In := inferredInput(balance1, r1, amount1Out)
	if amount0In.Sign() <= 0 && amount1In.Sign() <= 0 {
		return apperrors.ErrInsufficientInputAmount
	}

	// (b0*1000 - in0*3) * (b1*1000 - in1*3) >= r0*r1*1000^2
	adj0 := new(big.Int).Mul(balance0, feeAdjust)
	adj0.Sub(adj0, new(big.Int).Mul(amount0In, feeIn))
	adj1 := new(big.Int).Mul(balance1, feeAdjust)
	adj1.Sub(adj1, new(big.Int).Mul(amount1In, feeIn))
	lhs := new(big.Int).Mul(adj0, adj1)
	rhs := new(big.Int).Mul(r0, r1)
	rhs.Mul(rhs, feeAdjust).Mul(rhs, feeAdjust)
	if lhs.Cmp(rhs) < 0 {
		return apperrors.ErrK
	}

	if err := p.update(in, balance0, balance1); err != nil {
		return err
	}

	in.OnCommit(func() {
		p.log.Debug("swap",
			zap.Stringer("sender", in.Caller()),
			zap.Stringer("amount0In", amount0In),
			zap.Stringer("amount1In", amount1In),
			zap.Stringer("amount0Out", amount0Out),
			zap.Stringer("amount1Out", amount1Out),
			zap.Stringer("to", to))
		p.observer.Swapped(self, amount0In, amount1In, amount0Out, amount1Out)
	})
	return nil
}

// Skim sends any balance above the reserves to to.
func (p *Pair) Skim(tx *ledger.Tx, to common.Address) error {
	in, release, err := p.enter(tx)
	if err != nil {
		return err
	}
	defer release()

	t0, t1, err := p.tokens(in)
	if err != nil {
		return err
	}
	r0, r1, _ := p.GetReserves()
	excess0 := new(big.Int).Sub(t0.BalanceOf(p.Address()), r0)
	excess1 := new(big.Int).Sub(t1.BalanceOf(p.Address()), r1)
	if excess0.Sign() > 0 {
		if err := t0.Transfer(in, to, excess0); err != nil {
			return errors.Wrap(err, "token0.Transfer")
		}
	}
	if excess1.Sign() > 0 {
		if err := t1.Transfer(in, to, excess1); err != nil {
			return errors.Wrap(err, "token1.Transfer")
		}
	}
	return nil
}

// Sync forces reserves to match balances.
func (p *Pair) Sync(tx *ledger.Tx) error {
	in, release, err := p.enter(tx)
	if err != nil {
		return err
	}
	defer release()

	t0, t1, err := p.tokens(in)
	if err != nil {
		return err
	}
	return p.update(in, t0.BalanceOf(p.Address()), t1.BalanceOf(p.Address()))
}

// inferredInput returns balance - (reserve - out), floored at zero.
func inferredInput(balance, reserve, out *big.Int) *big.Int {
	kept := new(big.Int).Sub(reserve, out)
	if balance.Cmp(kept) <= 0 {
		return new(big.Int)
	}
	return kept.Sub(balance, kept)
}

// At resolves the pair deployed at addr.
func At(l *ledger.Ledger, addr common.Address) (*Pair, error) {
	return ledger.At[*Pair](l, addr)
}
