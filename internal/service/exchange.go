package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/pair"
	"github.com/fleshka4/amm-router/internal/router"
	"github.com/fleshka4/amm-router/internal/service/dto"
	"github.com/fleshka4/amm-router/internal/service/validate"
	"github.com/fleshka4/amm-router/internal/token"
)

// Quote returns the amount equivalent to req.Amount at the given reserves.
func (s *ExchangeService) Quote(_ context.Context, req dto.QuoteRequest) (*big.Int, error) {
	if err := validate.QuoteRequestValidate(req); err != nil {
		return nil, err
	}
	return s.router.Quote(req.Amount, req.ReserveIn, req.ReserveOut)
}

// AmountOut returns the output of one hop for an exact input.
func (s *ExchangeService) AmountOut(_ context.Context, req dto.QuoteRequest) (*big.Int, error) {
	if err := validate.QuoteRequestValidate(req); err != nil {
		return nil, err
	}
	return s.router.GetAmountOut(req.Amount, req.ReserveIn, req.ReserveOut)
}

// AmountIn returns the input of one hop for an exact output.
func (s *ExchangeService) AmountIn(_ context.Context, req dto.QuoteRequest) (*big.Int, error) {
	if err := validate.QuoteRequestValidate(req); err != nil {
		return nil, err
	}
	return s.router.GetAmountIn(req.Amount, req.ReserveIn, req.ReserveOut)
}

// AmountsOut quotes every hop of req.Path for an exact input.
func (s *ExchangeService) AmountsOut(_ context.Context, req dto.PathRequest) ([]*big.Int, error) {
	if err := validate.PathRequestValidate(req); err != nil {
		return nil, err
	}
	return s.router.GetAmountsOut(req.Amount, req.Path)
}

// AmountsIn quotes every hop of req.Path for an exact output.
func (s *ExchangeService) AmountsIn(_ context.Context, req dto.PathRequest) ([]*big.Int, error) {
	if err := validate.PathRequestValidate(req); err != nil {
		return nil, err
	}
	return s.router.GetAmountsIn(req.Amount, req.Path)
}

// Reserves returns the reserves of the tokenA/tokenB pair.
func (s *ExchangeService) Reserves(_ context.Context, tokenA, tokenB common.Address) (*dto.Reserves, error) {
	reserveA, reserveB, err := s.router.GetReserves(tokenA, tokenB)
	if err != nil {
		return nil, err
	}
	return &dto.Reserves{TokenA: tokenA, TokenB: tokenB, ReserveA: reserveA, ReserveB: reserveB}, nil
}

// Pairs lists every pair created by the factory.
func (s *ExchangeService) Pairs(_ context.Context) ([]dto.Pair, error) {
	var out []dto.Pair
	err := s.ledger.View(func() error {
		for _, addr := range s.router.Factory().AllPairs() {
			p, err := pair.At(s.ledger, addr)
			if err != nil {
				return err
			}
			r0, r1, _ := p.GetReserves()
			out = append(out, dto.Pair{
				Address:     addr,
				Token0:      p.Token0(),
				Token1:      p.Token1(),
				Reserve0:    r0,
				Reserve1:    r1,
				TotalSupply: p.TotalSupply(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "s.ledger.View")
	}
	return out, nil
}

// Tokens lists the tokens deployed at genesis or by mirroring.
func (s *ExchangeService) Tokens(_ context.Context) ([]dto.Token, error) {
	out := make([]dto.Token, 0, len(s.tokens))
	err := s.ledger.View(func() error {
		for _, addr := range s.tokens {
			t, err := token.At(s.ledger, addr)
			if err != nil {
				return err
			}
			info := dto.Token{Address: addr}
			if m, ok := t.(interface {
				Symbol() string
				Decimals() uint8
			}); ok {
				info.Symbol, info.Decimals = m.Symbol(), m.Decimals()
			}
			out = append(out, info)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "s.ledger.View")
	}
	return out, nil
}

// SwapExactTokensForTokens executes a swap on behalf of req.Caller.
func (s *ExchangeService) SwapExactTokensForTokens(ctx context.Context, req dto.SwapRequest) ([]*big.Int, error) {
	if err := validate.SwapRequestValidate(req); err != nil {
		return nil, err
	}
	return s.router.SwapExactTokensForTokens(ctx, req.Caller, router.SwapExactInRequest{
		AmountIn:     req.AmountIn,
		AmountOutMin: req.AmountOutMin,
		Path:         req.Path,
		To:           req.To,
		Deadline:     req.Deadline,
	})
}

// AddLiquidity deposits on behalf of req.Caller.
func (s *ExchangeService) AddLiquidity(ctx context.Context, req dto.AddLiquidityRequest) (*dto.AddLiquidityResult, error) {
	if req.Caller == (common.Address{}) || req.To == (common.Address{}) {
		return nil, errors.Wrap(apperrors.ErrInvalidArgument, "caller and to are required")
	}
	res, err := s.router.AddLiquidity(ctx, req.Caller, router.AddLiquidityRequest{
		TokenA:         req.TokenA,
		TokenB:         req.TokenB,
		AmountADesired: req.AmountADesired,
		AmountBDesired: req.AmountBDesired,
		AmountAMin:     req.AmountAMin,
		AmountBMin:     req.AmountBMin,
		To:             req.To,
		Deadline:       req.Deadline,
	})
	if err != nil {
		return nil, err
	}
	return &dto.AddLiquidityResult{AmountA: res.AmountA, AmountB: res.AmountB, Liquidity: res.Liquidity}, nil
}
