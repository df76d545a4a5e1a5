package service

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/service/dto"
	"github.com/fleshka4/amm-router/internal/service/validate"
	"github.com/fleshka4/amm-router/internal/uniswapv2"
)

// Estimate performs the complete business logic for off-chain swap calculation.
//
// It validates the request parameters, reads the pair state (tokens and
// reserves) through the pair reader, and calculates the output amount using
// the constant product formula with fee adjustment.
func (s *ExchangeService) Estimate(ctx context.Context, req dto.EstimateRequest) (*big.Int, error) {
	if err := validate.EstimateRequestValidate(req); err != nil {
		return nil, err
	}

	token0, token1, err := s.reader.GetPairTokens(ctx, req.Pool)
	if err != nil {
		return nil, errors.Wrap(apperrors.ErrPairRead, err.Error())
	}

	// Check that src/dst belong to the pair.
	var flip bool
	switch {
	case req.Src == token0 && req.Dst == token1:
	case req.Src == token1 && req.Dst == token0:
		flip = true
	default:
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "src and dst must be the pair tokens")
	}

	reserveIn, reserveOut, err := s.reader.GetPairReserves(ctx, req.Pool)
	if err != nil {
		return nil, errors.Wrap(apperrors.ErrPairRead, err.Error())
	}
	if flip {
		reserveIn, reserveOut = reserveOut, reserveIn
	}

	amountOut, err := uniswapv2.GetAmountOut(req.SrcAmount, reserveIn, reserveOut)
	if err != nil {
		return nil, err
	}
	if amountOut.Sign() == 0 {
		return nil, errors.Wrap(apperrors.ErrInsufficientLiquidity, "output rounds to zero")
	}
	return amountOut, nil
}
