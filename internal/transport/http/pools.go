package http

import (
	"context"
	"net/http"

	"github.com/fleshka4/amm-router/internal/transport/http/dto"
	"github.com/fleshka4/amm-router/internal/transport/http/validate"
)

func (s *Server) handleReserves(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.ReservesRequestValidate(r)
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	res, err := s.svc.Reserves(ctx, req.TokenA, req.TokenB)
	if err != nil {
		s.writeError(w, "reserves", err)
		return
	}
	s.writeJSON(w, dto.ReservesResponse{
		TokenA:   res.TokenA.Hex(),
		TokenB:   res.TokenB.Hex(),
		ReserveA: res.ReserveA.String(),
		ReserveB: res.ReserveB.String(),
	})
}

func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	pairs, err := s.svc.Pairs(ctx)
	if err != nil {
		s.writeError(w, "pairs", err)
		return
	}
	out := make([]dto.PairResponse, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, dto.PairResponse{
			Address:     p.Address.Hex(),
			Token0:      p.Token0.Hex(),
			Token1:      p.Token1.Hex(),
			Reserve0:    p.Reserve0.String(),
			Reserve1:    p.Reserve1.String(),
			TotalSupply: p.TotalSupply.String(),
		})
	}
	s.writeJSON(w, out)
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	tokens, err := s.svc.Tokens(ctx)
	if err != nil {
		s.writeError(w, "tokens", err)
		return
	}
	out := make([]dto.TokenResponse, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, dto.TokenResponse{
			Address:  t.Address.Hex(),
			Symbol:   t.Symbol,
			Decimals: t.Decimals,
		})
	}
	s.writeJSON(w, out)
}
