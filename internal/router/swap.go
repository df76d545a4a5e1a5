package router

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/ledger"
	"github.com/fleshka4/amm-router/internal/uniswapv2"
)

// SwapExactInRequest swaps an exact input along Path. For the native-input
// variant AmountIn is ignored and the attached value is swapped instead.
type SwapExactInRequest struct {
	AmountIn     *big.Int
	AmountOutMin *big.Int
	Path         []common.Address
	To           common.Address
	Deadline     uint64
}

// SwapExactOutRequest swaps for an exact output along Path. For the
// native-input variant AmountInMax is ignored and the attached value is the cap.
type SwapExactOutRequest struct {
	AmountOut   *big.Int
	AmountInMax *big.Int
	Path        []common.Address
	To          common.Address
	Deadline    uint64
}

// swap runs every hop of path. Each pair pays straight into the next pair
// and the last one pays to.
func (r *Router) swap(in *ledger.Tx, amounts []*big.Int, path []common.Address, to common.Address) error {
	for i := 0; i < len(path)-1; i++ {
		input, output := path[i], path[i+1]
		token0, _, err := uniswapv2.SortTokens(input, output)
		if err != nil {
			return err
		}
		amount0Out, amount1Out := new(big.Int), amounts[i+1]
		if input != token0 {
			amount0Out, amount1Out = amounts[i+1], new(big.Int)
		}

		recipient := to
		if i < len(path)-2 {
			next, err := r.factory.PairOf(output, path[i+2])
			if err != nil {
				return err
			}
			recipient = next.Address()
		}

		p, err := r.factory.PairOf(input, output)
		if err != nil {
			return err
		}
		if err := p.Swap(in, amount0Out, amount1Out, recipient); err != nil {
			return errors.Wrapf(err, "hop %d", i)
		}
	}
	return nil
}

// payFirstPair moves amount of path[0] from the caller into the first pair.
func (r *Router) payFirstPair(in *ledger.Tx, path []common.Address, amount *big.Int) error {
	p, err := r.factory.PairOf(path[0], path[1])
	if err != nil {
		return err
	}
	tok, err := r.token(path[0])
	if err != nil {
		return err
	}
	return errors.Wrap(tok.TransferFrom(in, in.Caller(), p.Address(), amount), "token.TransferFrom")
}

// wrapIntoFirstPair wraps amount of the attached value and sends it to the first pair.
func (r *Router) wrapIntoFirstPair(in *ledger.Tx, path []common.Address, amount *big.Int) error {
	p, err := r.factory.PairOf(path[0], path[1])
	if err != nil {
		return err
	}
	if err := r.wnative.Deposit(in, amount); err != nil {
		return errors.Wrap(err, "wnative.Deposit")
	}
	return errors.Wrap(r.wnative.Transfer(in, p.Address(), amount), "wnative.Transfer")
}

// unwrapTo unwraps amount held by the router and sends it to to.
func (r *Router) unwrapTo(in *ledger.Tx, to common.Address, amount *big.Int) error {
	if err := r.wnative.Withdraw(in, amount); err != nil {
		return errors.Wrap(err, "wnative.Withdraw")
	}
	return errors.Wrap(in.SendNative(to, amount), "in.SendNative")
}

func checkPath(path []common.Address) error {
	if len(path) < 2 {
		return errors.Wrapf(apperrors.ErrInvalidPath, "length %d", len(path))
	}
	return nil
}

func (r *Router) checkNativeIn(path []common.Address) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if path[0] != r.wnative.Address() {
		return errors.Wrap(apperrors.ErrInvalidPath, "path must start with wrapped native")
	}
	return nil
}

func (r *Router) checkNativeOut(path []common.Address) error {
	if err := checkPath(path); err != nil {
		return err
	}
	if path[len(path)-1] != r.wnative.Address() {
		return errors.Wrap(apperrors.ErrInvalidPath, "path must end with wrapped native")
	}
	return nil
}

func minOut(amounts []*big.Int, amountOutMin *big.Int) error {
	if last := amounts[len(amounts)-1]; last.Cmp(amountOutMin) < 0 {
		return errors.Wrapf(apperrors.ErrInsufficientOutputAmount, "got %s, min %s", last, amountOutMin)
	}
	return nil
}

func maxIn(amounts []*big.Int, amountInMax *big.Int) error {
	if first := amounts[0]; first.Cmp(amountInMax) > 0 {
		return errors.Wrapf(apperrors.ErrExcessiveInputAmount, "need %s, max %s", first, amountInMax)
	}
	return nil
}

// SwapExactTokensForTokens swaps exactly req.AmountIn of path[0] for as much of
// the last token as possible.
func (r *Router) SwapExactTokensForTokens(ctx context.Context, caller common.Address, req SwapExactInRequest) ([]*big.Int, error) {
	var amounts []*big.Int
	err := r.execute(ctx, "swapExactTokensForTokens", caller, nil, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		if err := nonNegative(req.AmountIn, req.AmountOutMin); err != nil {
			return err
		}
		if err := checkPath(req.Path); err != nil {
			return err
		}
		var err error
		if amounts, err = uniswapv2.GetAmountsOut(r.factory, req.AmountIn, req.Path); err != nil {
			return err
		}
		if err := minOut(amounts, req.AmountOutMin); err != nil {
			return err
		}
		if err := r.payFirstPair(in, req.Path, amounts[0]); err != nil {
			return err
		}
		return r.swap(in, amounts, req.Path, req.To)
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// SwapTokensForExactTokens receives exactly req.AmountOut of the last token
// spending as little of path[0] as possible.
func (r *Router) SwapTokensForExactTokens(ctx context.Context, caller common.Address, req SwapExactOutRequest) ([]*big.Int, error) {
	var amounts []*big.Int
	err := r.execute(ctx, "swapTokensForExactTokens", caller, nil, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		if err := nonNegative(req.AmountOut, req.AmountInMax); err != nil {
			return err
		}
		if err := checkPath(req.Path); err != nil {
			return err
		}
		var err error
		if amounts, err = uniswapv2.GetAmountsIn(r.factory, req.AmountOut, req.Path); err != nil {
			return err
		}
		if err := maxIn(amounts, req.AmountInMax); err != nil {
			return err
		}
		if err := r.payFirstPair(in, req.Path, amounts[0]); err != nil {
			return err
		}
		return r.swap(in, amounts, req.Path, req.To)
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// SwapExactCSPRForTokens swaps the attached native value for tokens.
func (r *Router) SwapExactCSPRForTokens(ctx context.Context, caller common.Address, value *big.Int,
	req SwapExactInRequest,
) ([]*big.Int, error) {
	var amounts []*big.Int
	err := r.execute(ctx, "swapExactCSPRForTokens", caller, value, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		if err := nonNegative(req.AmountOutMin); err != nil {
			return err
		}
		if err := r.checkNativeIn(req.Path); err != nil {
			return err
		}
		var err error
		if amounts, err = uniswapv2.GetAmountsOut(r.factory, in.Value(), req.Path); err != nil {
			return err
		}
		if err := minOut(amounts, req.AmountOutMin); err != nil {
			return err
		}
		if err := r.wrapIntoFirstPair(in, req.Path, amounts[0]); err != nil {
			return err
		}
		return r.swap(in, amounts, req.Path, req.To)
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// SwapTokensForExactCSPR spends tokens to receive exactly req.AmountOut native currency.
func (r *Router) SwapTokensForExactCSPR(ctx context.Context, caller common.Address, req SwapExactOutRequest) ([]*big.Int, error) {
	var amounts []*big.Int
	err := r.execute(ctx, "swapTokensForExactCSPR", caller, nil, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		if err := nonNegative(req.AmountOut, req.AmountInMax); err != nil {
			return err
		}
		if err := r.checkNativeOut(req.Path); err != nil {
			return err
		}
		var err error
		if amounts, err = uniswapv2.GetAmountsIn(r.factory, req.AmountOut, req.Path); err != nil {
			return err
		}
		if err := maxIn(amounts, req.AmountInMax); err != nil {
			return err
		}
		if err := r.payFirstPair(in, req.Path, amounts[0]); err != nil {
			return err
		}
		if err := r.swap(in, amounts, req.Path, r.address); err != nil {
			return err
		}
		return r.unwrapTo(in, req.To, amounts[len(amounts)-1])
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// SwapExactTokensForCSPR swaps exactly req.AmountIn tokens for native currency.
func (r *Router) SwapExactTokensForCSPR(ctx context.Context, caller common.Address, req SwapExactInRequest) ([]*big.Int, error) {
	var amounts []*big.Int
	err := r.execute(ctx, "swapExactTokensForCSPR", caller, nil, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		if err := nonNegative(req.AmountIn, req.AmountOutMin); err != nil {
			return err
		}
		if err := r.checkNativeOut(req.Path); err != nil {
			return err
		}
		var err error
		if amounts, err = uniswapv2.GetAmountsOut(r.factory, req.AmountIn, req.Path); err != nil {
			return err
		}
		if err := minOut(amounts, req.AmountOutMin); err != nil {
			return err
		}
		if err := r.payFirstPair(in, req.Path, amounts[0]); err != nil {
			return err
		}
		if err := r.swap(in, amounts, req.Path, r.address); err != nil {
			return err
		}
		return r.unwrapTo(in, req.To, amounts[len(amounts)-1])
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

// SwapCSPRForExactTokens receives exactly req.AmountOut tokens paying with the
// attached native value. Unused value is refunded to caller.
func (r *Router) SwapCSPRForExactTokens(ctx context.Context, caller common.Address, value *big.Int,
	req SwapExactOutRequest,
) ([]*big.Int, error) {
	var amounts []*big.Int
	err := r.execute(ctx, "swapCSPRForExactTokens", caller, value, func(in *ledger.Tx) error {
		if err := ensure(in, req.Deadline); err != nil {
			return err
		}
		if err := nonNegative(req.AmountOut); err != nil {
			return err
		}
		if err := r.checkNativeIn(req.Path); err != nil {
			return err
		}
		var err error
		if amounts, err = uniswapv2.GetAmountsIn(r.factory, req.AmountOut, req.Path); err != nil {
			return err
		}
		paid := in.Value()
		if err := maxIn(amounts, paid); err != nil {
			return err
		}
		if err := r.wrapIntoFirstPair(in, req.Path, amounts[0]); err != nil {
			return err
		}
		if err := r.swap(in, amounts, req.Path, req.To); err != nil {
			return err
		}
		if dust := new(big.Int).Sub(paid, amounts[0]); dust.Sign() > 0 {
			return errors.Wrap(in.SendNative(in.Caller(), dust), "refund")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}
