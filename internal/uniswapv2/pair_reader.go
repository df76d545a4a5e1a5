package uniswapv2

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PairReader defines the interface required to read Uniswap-like pair data.
type PairReader interface {
	// GetPairTokens returns token0 and token1 addresses of a pair.
	GetPairTokens(ctx context.Context, pair common.Address) (common.Address, common.Address, error)

	// GetPairReserves returns reserve0 and reserve1 of the pair.
	GetPairReserves(ctx context.Context, pair common.Address) (*big.Int, *big.Int, error)
}
