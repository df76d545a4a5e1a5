package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/fleshka4/amm-router/internal/ledger"
	"github.com/fleshka4/amm-router/internal/pair"
)

// LedgerPairReader reads pairs deployed on the local ledger.
type LedgerPairReader struct {
	ledger *ledger.Ledger
}

// NewLedgerPairReader creates LedgerPairReader.
func NewLedgerPairReader(l *ledger.Ledger) *LedgerPairReader {
	return &LedgerPairReader{ledger: l}
}

// GetPairTokens returns token0 and token1 of a local pair.
func (r *LedgerPairReader) GetPairTokens(ctx context.Context, addr common.Address) (common.Address, common.Address, error) {
	if err := ctx.Err(); err != nil {
		return common.Address{}, common.Address{}, err
	}
	var token0, token1 common.Address
	err := r.ledger.View(func() error {
		p, err := pair.At(r.ledger, addr)
		if err != nil {
			return err
		}
		token0, token1 = p.Token0(), p.Token1()
		return nil
	})
	return token0, token1, err
}

// GetPairReserves returns the reserves of a local pair.
func (r *LedgerPairReader) GetPairReserves(ctx context.Context, addr common.Address) (*big.Int, *big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	var reserve0, reserve1 *big.Int
	err := r.ledger.View(func() error {
		p, err := pair.At(r.ledger, addr)
		if err != nil {
			return err
		}
		reserve0, reserve1, _ = p.GetReserves()
		return nil
	})
	return reserve0, reserve1, err
}
