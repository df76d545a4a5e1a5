package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// QuoteRequest holds the inputs of a single-pool calculation: an amount and
// the reserves on the input and output side.
type QuoteRequest struct {
	Amount     *big.Int
	ReserveIn  *big.Int
	ReserveOut *big.Int
}

// PathRequest quotes an amount along a path of tokens.
type PathRequest struct {
	Amount *big.Int
	Path   []common.Address
}

// Reserves of a pool in the requested token orientation.
type Reserves struct {
	TokenA   common.Address
	TokenB   common.Address
	ReserveA *big.Int
	ReserveB *big.Int
}

// Pair describes a deployed pair.
type Pair struct {
	Address     common.Address
	Token0      common.Address
	Token1      common.Address
	Reserve0    *big.Int
	Reserve1    *big.Int
	TotalSupply *big.Int
}

// Token describes a deployed token.
type Token struct {
	Address  common.Address
	Symbol   string
	Decimals uint8
}

// SwapRequest swaps an exact input along Path on behalf of Caller.
type SwapRequest struct {
	Caller       common.Address
	AmountIn     *big.Int
	AmountOutMin *big.Int
	Path         []common.Address
	To           common.Address
	Deadline     uint64
}

// AddLiquidityRequest deposits into a token pair on behalf of Caller.
type AddLiquidityRequest struct {
	Caller         common.Address
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
