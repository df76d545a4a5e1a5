package dto

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EstimateRequest asks for the output of selling SrcAmount of Src into Dst
// through Pool, which is either a ledger pair or a mirrored chain pair.
// No state is changed by the estimate.
type EstimateRequest struct {
	// Pool is the pair address as listed by the factory.
	Pool common.Address
	Src  common.Address
	Dst  common.Address
	// SrcAmount is in Src base units.
	SrcAmount *big.Int
}
