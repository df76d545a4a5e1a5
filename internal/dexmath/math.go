package dexmath

import (
	"math/big"
	"sync"

	"github.com/holiman/uint256"
)

var (
	// Fee constants: 0.3% = 3/1000.
	feeMul = big.NewInt(997)
	feeDen = big.NewInt(1000)
	one    = big.NewInt(1)

	defaultMath = newMathService()
)

type mathTmp struct {
	a *big.Int
	b *big.Int
	c *big.Int
}

type mathService struct {
	pool *sync.Pool
}

func newMathService() *mathService {
	return &mathService{
		pool: &sync.Pool{
			New: func() any {
				return &mathTmp{
					a: new(big.Int),
					b: new(big.Int),
					c: new(big.Int),
				}
			},
		},
	}
}

func (m *mathService) getAmountOutInto(out, amountIn, reserveIn, reserveOut *big.Int) bool {
	if out == nil {
		return false
	}
	// basic validation.
	if amountIn.Sign() <= 0 || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		out.SetInt64(0)
		return false
	}

	t := m.pool.Get().(*mathTmp)
	defer m.pool.Put(t)

	// ainFee := amountIn * 997.
	t.a.Mul(amountIn, feeMul)

	// num := ainFee * reserveOut.
	t.b.Mul(t.a, reserveOut)

	// den := reserveIn * 1000 + ainFee.
	t.c.Mul(reserveIn, feeDen)
	t.c.Add(t.c, t.a)

	out.Quo(t.b, t.c)
	return true
}

func (m *mathService) getAmountInInto(in, amountOut, reserveIn, reserveOut *big.Int) bool {
	if in == nil {
		return false
	}
	if amountOut.Sign() <= 0 || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 || amountOut.Cmp(reserveOut) >= 0 {
		in.SetInt64(0)
		return false
	}

	t := m.pool.Get().(*mathTmp)
	defer m.pool.Put(t)

	// num := reserveIn * amountOut * 1000.
	t.a.Mul(reserveIn, amountOut)
	t.a.Mul(t.a, feeDen)

	// den := (reserveOut - amountOut) * 997.
	t.b.Sub(reserveOut, amountOut)
	t.b.Mul(t.b, feeMul)

	// in = num / den + 1.
	in.Quo(t.a, t.b)
	in.Add(in, one)
	return true
}

// GetAmountOutInto computes the amount of output tokens received for a given input amount,
// using Uniswap V2 formula with 0.3% fee (997/1000).
//
// It writes the result into out and returns ok. ok is false if any value is zero.
// out must be non-nil; this function does not allocate for temporaries
// if the pool is warm. Caller should reuse `out` when possible.
func GetAmountOutInto(out, amountIn, reserveIn, reserveOut *big.Int) bool {
	return defaultMath.getAmountOutInto(out, amountIn, reserveIn, reserveOut)
}

// GetAmountOut computes the amount of output tokens received for a given input amount,
// using Uniswap V2 formula with 0.3% fee (997/1000).
//
// Returns (output, true) if calculation is successful, or (0, false) if any value is zero.
func GetAmountOut(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, bool) {
	out := new(big.Int)
	ok := defaultMath.getAmountOutInto(out, amountIn, reserveIn, reserveOut)
	return out, ok
}

// GetAmountInInto computes the input required to receive amountOut:
// reserveIn*amountOut*1000 / ((reserveOut-amountOut)*997) + 1.
// The trailing +1 rounds up so the pool is never under-charged.
//
// ok is false if any value is zero or amountOut does not fit below reserveOut.
func GetAmountInInto(in, amountOut, reserveIn, reserveOut *big.Int) bool {
	return defaultMath.getAmountInInto(in, amountOut, reserveIn, reserveOut)
}

// GetAmountIn is the allocating variant of GetAmountInInto.
func GetAmountIn(amountOut, reserveIn, reserveOut *big.Int) (*big.Int, bool) {
	in := new(big.Int)
	ok := defaultMath.getAmountInInto(in, amountOut, reserveIn, reserveOut)
	return in, ok
}

// Quote returns amountA * reserveB / reserveA, floored.
func Quote(amountA, reserveA, reserveB *big.Int) (*big.Int, bool) {
	if amountA.Sign() <= 0 || reserveA.Sign() <= 0 || reserveB.Sign() <= 0 {
		return new(big.Int), false
	}
	out := new(big.Int).Mul(amountA, reserveB)
	return out.Quo(out, reserveA), true
}

// Sqrt returns floor(sqrt(x)) for x >= 0.
func Sqrt(x *big.Int) *big.Int {
	if x.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sqrt(x)
}

// Min returns the smaller of a and b.
func Min(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// FitsU256 reports whether x is in [0, 2^256).
func FitsU256(x *big.Int) bool {
	if x == nil || x.Sign() < 0 {
		return false
	}
	_, overflow := uint256.FromBig(x)
	return !overflow
}

// MaxU256 returns 2^256 - 1.
func MaxU256() *big.Int {
	return new(uint256.Int).SetAllOne().ToBig()
}
