package uniswapv2

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/dexmath"
)

// PairInitCodeHash stands in for the pair creation code hash in CREATE2
// address derivation.
var PairInitCodeHash = crypto.Keccak256Hash([]byte("amm-router/pair/v1"))

// Pool is the read surface of a pair.
type Pool interface {
	Token0() common.Address
	GetReserves() (reserve0, reserve1 *big.Int, blockTimestampLast uint32)
}

// PoolLocator finds the pool of an unordered token pair.
type PoolLocator interface {
	Pool(tokenA, tokenB common.Address) (Pool, error)
}

// SortTokens returns the two tokens in canonical byte order.
func SortTokens(tokenA, tokenB common.Address) (common.Address, common.Address, error) {
	if tokenA == tokenB {
		return common.Address{}, common.Address{}, errors.Wrapf(apperrors.ErrIdenticalAddresses, "%s", tokenA.Hex())
	}
	token0, token1 := tokenA, tokenB
	if bytes.Compare(tokenA.Bytes(), tokenB.Bytes()) > 0 {
		token0, token1 = tokenB, tokenA
	}
	// token0 is the smaller one, so only it can be zero.
	if token0 == (common.Address{}) {
		return common.Address{}, common.Address{}, apperrors.ErrZeroAddress
	}
	return token0, token1, nil
}

// PairSalt returns the CREATE2 salt of a sorted pair.
func PairSalt(token0, token1 common.Address) [32]byte {
	return crypto.Keccak256Hash(token0.Bytes(), token1.Bytes())
}

// PairFor computes the address of the pair for tokenA and tokenB created by
// factory, without reading any state.
func PairFor(factory, tokenA, tokenB common.Address) (common.Address, error) {
	token0, token1, err := SortTokens(tokenA, tokenB)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.CreateAddress2(factory, PairSalt(token0, token1), PairInitCodeHash.Bytes()), nil
}

var (
	feeNumerator   = big.NewInt(997)
	feeDenominator = big.NewInt(1000)
)

func ensureU256(vals ...*big.Int) error {
	for _, v := range vals {
		if !dexmath.FitsU256(v) {
			return errors.Wrapf(apperrors.ErrOverflow, "%s exceeds 256 bits", v)
		}
	}
	return nil
}

// checkedMul multiplies factors left to right and fails as soon as a partial
// product leaves the 256-bit range.
func checkedMul(factors ...*big.Int) (*big.Int, error) {
	acc := big.NewInt(1)
	for _, f := range factors {
		acc.Mul(acc, f)
		if !dexmath.FitsU256(acc) {
			return nil, errors.Wrap(apperrors.ErrOverflow, "product exceeds 256 bits")
		}
	}
	return acc, nil
}

// Quote returns the amount of B equivalent to amountA at the given reserves.
func Quote(amountA, reserveA, reserveB *big.Int) (*big.Int, error) {
	if amountA == nil || amountA.Sign() <= 0 {
		return nil, apperrors.ErrInsufficientAmount
	}
	if reserveA.Sign() <= 0 || reserveB.Sign() <= 0 {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	if err := ensureU256(amountA, reserveA, reserveB); err != nil {
		return nil, err
	}
	if _, err := checkedMul(amountA, reserveB); err != nil {
		return nil, errors.Wrap(err, "quote")
	}
	out, ok := dexmath.Quote(amountA, reserveA, reserveB)
	if !ok {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	return out, nil
}

// GetAmountOut returns the maximum output for amountIn after the 0.3% fee.
func GetAmountOut(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, apperrors.ErrInsufficientInputAmount
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	if err := ensureU256(amountIn, reserveIn, reserveOut); err != nil {
		return nil, err
	}
	inWithFee, err := checkedMul(amountIn, feeNumerator)
	if err != nil {
		return nil, errors.Wrap(err, "amount in with fee")
	}
	if _, err := checkedMul(inWithFee, reserveOut); err != nil {
		return nil, errors.Wrap(err, "numerator")
	}
	den, err := checkedMul(reserveIn, feeDenominator)
	if err != nil {
		return nil, errors.Wrap(err, "denominator")
	}
	if err := ensureU256(den.Add(den, inWithFee)); err != nil {
		return nil, errors.Wrap(err, "denominator")
	}
	out, ok := dexmath.GetAmountOut(amountIn, reserveIn, reserveOut)
	if !ok {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	return out, nil
}

// GetAmountIn returns the minimum input needed to receive amountOut.
func GetAmountIn(amountOut, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if amountOut == nil || amountOut.Sign() <= 0 {
		return nil, apperrors.ErrInsufficientOutputAmount
	}
	if reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	if amountOut.Cmp(reserveOut) >= 0 {
		return nil, errors.Wrapf(apperrors.ErrInsufficientOutputAmount, "%s exceeds reserve %s", amountOut, reserveOut)
	}
	if err := ensureU256(amountOut, reserveIn, reserveOut); err != nil {
		return nil, err
	}
	if _, err := checkedMul(reserveIn, amountOut, feeDenominator); err != nil {
		return nil, errors.Wrap(err, "numerator")
	}
	// reserveOut-amountOut < reserveOut, so only the fee factor can overflow.
	if _, err := checkedMul(new(big.Int).Sub(reserveOut, amountOut), feeNumerator); err != nil {
		return nil, errors.Wrap(err, "denominator")
	}
	in, ok := dexmath.GetAmountIn(amountOut, reserveIn, reserveOut)
	if !ok {
		return nil, apperrors.ErrInsufficientLiquidity
	}
	if err := ensureU256(in); err != nil {
		return nil, err
	}
	return in, nil
}

// GetReserves returns the reserves of the tokenA/tokenB pool in that orientation.
func GetReserves(loc PoolLocator, tokenA, tokenB common.Address) (*big.Int, *big.Int, error) {
	token0, _, err := SortTokens(tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	pool, err := loc.Pool(tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}
	r0, r1, _ := pool.GetReserves()
	if tokenA == token0 {
		return r0, r1, nil
	}
	return r1, r0, nil
}

// GetAmountsOut performs chained GetAmountOut calculations along path.
func GetAmountsOut(loc PoolLocator, amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	if len(path) < 2 {
		return nil, apperrors.ErrInvalidPath
	}
	amounts := make([]*big.Int, len(path))
	amounts[0] = new(big.Int).Set(amountIn)
	for i := 0; i < len(path)-1; i++ {
		reserveIn, reserveOut, err := GetReserves(loc, path[i], path[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "hop %d", i)
		}
		out, err := GetAmountOut(amounts[i], reserveIn, reserveOut)
		if err != nil {
			return nil, errors.Wrapf(err, "hop %d", i)
		}
		amounts[i+1] = out
	}
	return amounts, nil
}

// GetAmountsIn performs chained GetAmountIn calculations from the end of path.
func GetAmountsIn(loc PoolLocator, amountOut *big.Int, path []common.Address) ([]*big.Int, error) {
	if len(path) < 2 {
		return nil, apperrors.ErrInvalidPath
	}
	amounts := make([]*big.Int, len(path))
	amounts[len(amounts)-1] = new(big.Int).Set(amountOut)
	for i := len(path) - 1; i > 0; i-- {
		reserveIn, reserveOut, err := GetReserves(loc, path[i-1], path[i])
		if err != nil {
			return nil, errors.Wrapf(err, "hop %d", i-1)
		}
		in, err := GetAmountIn(amounts[i], reserveIn, reserveOut)
		if err != nil {
			return nil, errors.Wrapf(err, "hop %d", i-1)
		}
		amounts[i-1] = in
	}
	return amounts, nil
}
