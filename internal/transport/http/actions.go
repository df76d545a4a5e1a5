package http

import (
	"context"
	"net/http"

	"github.com/fleshka4/amm-router/internal/transport/http/dto"
	"github.com/fleshka4/amm-router/internal/transport/http/validate"
)

func (s *Server) handleSwapExactTokensForTokens(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.SwapRequestValidate(r)
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	amounts, err := s.svc.SwapExactTokensForTokens(ctx, *req)
	if err != nil {
		s.writeError(w, "swap", err)
		return
	}
	s.writeJSON(w, dto.AmountsResponse{Amounts: amountStrings(amounts)})
}

func (s *Server) handleAddLiquidity(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.AddLiquidityRequestValidate(r)
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	res, err := s.svc.AddLiquidity(ctx, *req)
	if err != nil {
		s.writeError(w, "add-liquidity", err)
		return
	}
	s.writeJSON(w, dto.AddLiquidityResponse{
		AmountA:   res.AmountA.String(),
		AmountB:   res.AmountB.String(),
		Liquidity: res.Liquidity.String(),
	})
}
