package router

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/dexmath"
	"github.com/fleshka4/amm-router/internal/ledger"
	"github.com/fleshka4/amm-router/internal/pair"
	"github.com/fleshka4/amm-router/internal/token"
	"github.com/fleshka4/amm-router/internal/uniswapv2"
)

// AddLiquidityRequest deposits into the tokenA/tokenB pair.
type AddLiquidityRequest struct {
	TokenA         common.Address
	TokenB         common.Address
	AmountADesired *big.Int
	AmountBDesired *big.Int
	AmountAMin     *big.Int
	AmountBMin     *big.Int
	To             common.Address
	Deadline       uint64
}

// AddLiquidityResult holds the settled deposit.
type AddLiquidityResult struct {
	AmountA   *big.Int
	AmountB   *big.Int
	Liquidity *big.Int
}

// AddLiquidityCSPRRequest deposits into the token/wrapped-native pair. The
// desired native amount is the value attached to the call.
type AddLiquidityCSPRRequest struct {
	Token              common.Address
	AmountTokenDesired *big.Int
	AmountTokenMin     *big.Int
	AmountCSPRMin      *big.Int
	To                 common.Address
	Deadline           uint64
}

// AddLiquidityCSPRResult holds the settled native deposit.
type AddLiquidityCSPRResult struct {
	AmountToken *big.Int
	AmountCSPR  *big.Int
	Liquidity   *big.Int
}

// RemoveLiquidityRequest redeems shares of the tokenA/tokenB pair.
type RemoveLiquidityRequest struct {
	TokenA     common.Address
	TokenB     common.Address
	Liquidity  *big.Int
	AmountAMin *big.Int
	AmountBMin *big.Int
	To         common.Address
	Deadline   uint64
}

// RemoveLiquidityResult holds the amounts paid out.
type RemoveLiquidityResult struct {
	AmountA *big.Int
	AmountB *big.Int
}

// RemoveLiquidityCSPRRequest redeems shares of the token/wrapped-native pair
// and pays the native leg out unwrapped.
type RemoveLiquidityCSPRRequest struct {
	Token          common.Address
	Liquidity      *big.Int
	AmountTokenMin *big.Int
	AmountCSPRMin  *big.Int
	To             common.Address
	Deadline       uint64
}

// RemoveLiquidityCSPRResult holds the amounts paid out.
type RemoveLiquidityCSPRResult struct {
	AmountToken *big.Int
	AmountCSPR  *big.Int
}

// PermitSignature authorizes the router to spend the caller's shares.
// ApproveMax requests an unlimited allowance instead of exactly Liquidity.
type PermitSignature struct {
	ApproveMax bool
	V          uint8
	R          [32]byte
	S          [32]byte
}

// addLiquidity picks the deposit amounts, creating the pair if needed.
func (r *Router) addLiquidity(in *ledger.Tx, tokenA, tokenB common.Address,
	amountADesired, amountBDesired, amountAMin, amountBMin *big.Int,
) (*big.Int, *big.Int, *pair.Pair, error) {
	p, err := r.factory.PairOf(tokenA, tokenB)
	if errors.Is(err, apperrors.ErrPairNotFound) {
		p, err = r.factory.CreatePair(in, tokenA, tokenB)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	reserveA, reserveB, err := uniswapv2.GetReserves(r.factory, tokenA, tokenB)
	if err != nil {
		return nil, nil, nil, err
	}
	if reserveA.Sign() == 0 && reserveB.Sign() == 0 {
		return new(big.Int).Set(amountADesired), new(big.Int).Set(amountBDesired), p, nil
	}

	amountBOptimal, err := uniswapv2.Quote(amountADesired, reserveA, reserveB)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "quote B")
	}
	if amountBOptimal.Cmp(amountBDesired) <= 0 {
		if amountBOptimal.Cmp(amountBMin) < 0 {
			return nil, nil, nil, errors.Wrapf(apperrors.ErrInsufficientBAmount, "optimal %s, min %s", amountBOptimal, amountBMin)
		}
		return new(big.Int).Set(amountADesired), amountBOptimal, p, nil
	}

	amountAOptimal, err := uniswapv2.Quote(amountBDesired, reserveB, reserveA)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "quote A")
	}
	if amountAOptimal.Cmp(amountADesired) > 0 || amountAOptimal.Cmp(amountAMin) < 0 {
		return nil, nil, nil, errors.Wrapf(apperrors.ErrInsufficientAAmount, "optimal %s, min %s", amountAOptimal, amountAMin)
	}
	return amountAOptimal, new(big.Int).Set(amountBDesired), p, nil
}

// AddLiquidity deposits tokenA and tokenB from caller at the current pool ratio.
func (r *Router) AddLiquidity(ctx context.Context, caller common.Address, req AddLiquidityRequest) (*AddLiquidityResult, error) {
	var res AddLiquidityResult
	err := r.execute(ctx, "addLiquidity", caller, nil, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		if err := nonNegative(req.AmountADesired, req.AmountBDesired, req.AmountAMin, req.AmountBMin); err != nil {
			return err
		}
		amountA, amountB, p, err := r.addLiquidity(in, req.TokenA, req.TokenB,
			req.AmountADesired, req.AmountBDesired, req.AmountAMin, req.AmountBMin)
		if err != nil {
			return err
		}

		tokenA, err := r.token(req.TokenA)
		if err != nil {
			return err
		}
		tokenB, err := r.token(req.TokenB)
		if err != nil {
			return err
		}
		if err := tokenA.TransferFrom(in, in.Caller(), p.Address(), amountA); err != nil {
			return errors.Wrap(err, "tokenA.TransferFrom")
		}
		if err := tokenB.TransferFrom(in, in.Caller(), p.Address(), amountB); err != nil {
			return errors.Wrap(err, "tokenB.TransferFrom")
		}
		liquidity, err := p.Mint(in, req.To)
		if err != nil {
			return errors.Wrap(err, "p.Mint")
		}

		res = AddLiquidityResult{AmountA: amountA, AmountB: amountB, Liquidity: liquidity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AddLiquidityCSPR deposits token and the attached native value. Unused
// native value is refunded to caller.
func (r *Router) AddLiquidityCSPR(ctx context.Context, caller common.Address, value *big.Int,
	req AddLiquidityCSPRRequest,
) (*AddLiquidityCSPRResult, error) {
	var res AddLiquidityCSPRResult
	err := r.execute(ctx, "addLiquidityCSPR", caller, value, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		if err := nonNegative(req.AmountTokenDesired, req.AmountTokenMin, req.AmountCSPRMin); err != nil {
			return err
		}
		paid := in.Value()
		amountToken, amountCSPR, p, err := r.addLiquidity(in, req.Token, r.wnative.Address(),
			req.AmountTokenDesired, paid, req.AmountTokenMin, req.AmountCSPRMin)
		if err != nil {
			return err
		}

		tok, err := r.token(req.Token)
		if err != nil {
			return err
		}
		if err := tok.TransferFrom(in, in.Caller(), p.Address(), amountToken); err != nil {
			return errors.Wrap(err, "token.TransferFrom")
		}
		if err := r.wnative.Deposit(in, amountCSPR); err != nil {
			return errors.Wrap(err, "wnative.Deposit")
		}
		if err := r.wnative.Transfer(in, p.Address(), amountCSPR); err != nil {
			return errors.Wrap(err, "wnative.Transfer")
		}
		liquidity, err := p.Mint(in, req.To)
		if err != nil {
			return errors.Wrap(err, "p.Mint")
		}

		if dust := new(big.Int).Sub(paid, amountCSPR); dust.Sign() > 0 {
			if err := in.SendNative(in.Caller(), dust); err != nil {
				return errors.Wrap(err, "refund")
			}
		}

		res = AddLiquidityCSPRResult{AmountToken: amountToken, AmountCSPR: amountCSPR, Liquidity: liquidity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// removeLiquidity burns the caller's shares and checks the minimums after
// the burn. A failed check reverts the burn with the rest of the call.
func (r *Router) removeLiquidity(in *ledger.Tx, tokenA, tokenB common.Address,
	liquidity, amountAMin, amountBMin *big.Int, to common.Address,
) (*big.Int, *big.Int, error) {
	if err := nonNegative(liquidity, amountAMin, amountBMin); err != nil {
		return nil, nil, err
	}
	p, err := r.factory.PairOf(tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	if err := p.TransferFrom(in, in.Caller(), p.Address(), liquidity); err != nil {
		return nil, nil, errors.Wrap(err, "p.TransferFrom")
	}
	amount0, amount1, err := p.Burn(in, to)
	if err != nil {
		return nil, nil, errors.Wrap(err, "p.Burn")
	}

	token0, _, err := uniswapv2.SortTokens(tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	amountA, amountB := amount0, amount1
	if tokenA != token0 {
		amountA, amountB = amount1, amount0
	}
	if amountA.Cmp(amountAMin) < 0 {
		return nil, nil, errors.Wrapf(apperrors.ErrInsufficientAAmount, "got %s, min %s", amountA, amountAMin)
	}
	if amountB.Cmp(amountBMin) < 0 {
		return nil, nil, errors.Wrapf(apperrors.ErrInsufficientBAmount, "got %s, min %s", amountB, amountBMin)
	}
	return amountA, amountB, nil
}

func (r *Router) removeLiquidityCSPR(in *ledger.Tx, req RemoveLiquidityCSPRRequest) (*RemoveLiquidityCSPRResult, error) {
	amountToken, amountCSPR, err := r.removeLiquidity(in, req.Token, r.wnative.Address(),
		req.Liquidity, req.AmountTokenMin, req.AmountCSPRMin, r.address)
	if err != nil {
		return nil, err
	}
	tok, err := r.token(req.Token)
	if err != nil {
		return nil, err
	}
	if err := tok.Transfer(in, req.To, amountToken); err != nil {
		return nil, errors.Wrap(err, "token.Transfer")
	}
	if err := r.wnative.Withdraw(in, amountCSPR); err != nil {
		return nil, errors.Wrap(err, "wnative.Withdraw")
	}
	if err := in.SendNative(req.To, amountCSPR); err != nil {
		return nil, errors.Wrap(err, "in.SendNative")
	}
	return &RemoveLiquidityCSPRResult{AmountToken: amountToken, AmountCSPR: amountCSPR}, nil
}

// permit approves the router over the caller's shares of the tokenA/tokenB pair.
func (r *Router) permit(in *ledger.Tx, tokenA, tokenB common.Address, liquidity *big.Int,
	deadline uint64, sig PermitSignature,
) error {
	if err := nonNegative(liquidity); err != nil {
		return err
	}
	p, err := r.factory.PairOf(tokenA, tokenB)
	if err != nil {
		return err
	}
	value := new(big.Int).Set(liquidity)
	if sig.ApproveMax {
		value = dexmath.MaxU256()
	}
	err = p.Permit(in, token.Permit{
		Owner:    in.Caller(),
		Spender:  r.address,
		Value:    value,
		Deadline: deadline,
		V:        sig.V,
		R:        sig.R,
		S:        sig.S,
	})
	return errors.Wrap(err, "p.Permit")
}

// RemoveLiquidity burns liquidity shares of caller and pays both tokens to req.To.
func (r *Router) RemoveLiquidity(ctx context.Context, caller common.Address, req RemoveLiquidityRequest) (*RemoveLiquidityResult, error) {
	var res RemoveLiquidityResult
	err := r.execute(ctx, "removeLiquidity", caller, nil, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		amountA, amountB, err := r.removeLiquidity(in, req.TokenA, req.TokenB,
			req.Liquidity, req.AmountAMin, req.AmountBMin, req.To)
		if err != nil {
			return err
		}
		res = RemoveLiquidityResult{AmountA: amountA, AmountB: amountB}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// RemoveLiquidityCSPR is RemoveLiquidity for a wrapped-native pair, paying
// the native leg unwrapped.
func (r *Router) RemoveLiquidityCSPR(ctx context.Context, caller common.Address,
	req RemoveLiquidityCSPRRequest,
) (*RemoveLiquidityCSPRResult, error) {
	var res *RemoveLiquidityCSPRResult
	err := r.execute(ctx, "removeLiquidityCSPR", caller, nil, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		var err error
		res, err = r.removeLiquidityCSPR(in, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RemoveLiquidityWithPermit approves the router with sig and then removes liquidity.
func (r *Router) RemoveLiquidityWithPermit(ctx context.Context, caller common.Address,
	req RemoveLiquidityRequest, sig PermitSignature,
) (*RemoveLiquidityResult, error) {
	var res RemoveLiquidityResult
	err := r.execute(ctx, "removeLiquidityWithPermit", caller, nil, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		if err := r.permit(in, req.TokenA, req.TokenB, req.Liquidity, req.Deadline, sig); err != nil {
			return err
		}
		amountA, amountB, err := r.removeLiquidity(in, req.TokenA, req.TokenB,
			req.Liquidity, req.AmountAMin, req.AmountBMin, req.To)
		if err != nil {
			return err
		}
		res = RemoveLiquidityResult{AmountA: amountA, AmountB: amountB}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// RemoveLiquidityCSPRWithPermit approves the router with sig and then
// removes liquidity from a wrapped-native pair.
func (r *Router) RemoveLiquidityCSPRWithPermit(ctx context.Context, caller common.Address,
	req RemoveLiquidityCSPRRequest, sig PermitSignature,
) (*RemoveLiquidityCSPRResult, error) {
	var res *RemoveLiquidityCSPRResult
	err := r.execute(ctx, "removeLiquidityCSPRWithPermit", caller, nil, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		if err := r.permit(in, req.Token, r.wnative.Address(), req.Liquidity, req.Deadline, sig); err != nil {
			return err
		}
		var err error
		res, err = r.removeLiquidityCSPR(in, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
