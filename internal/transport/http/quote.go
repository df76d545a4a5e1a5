package http

import (
	"context"
	"math/big"
	"net/http"

	"go.uber.org/zap"

	svcdto "github.com/fleshka4/amm-router/internal/service/dto"
	"github.com/fleshka4/amm-router/internal/transport/http/dto"
	"github.com/fleshka4/amm-router/internal/transport/http/validate"
)

type quoteFunc func(ctx context.Context, req svcdto.QuoteRequest) (*big.Int, error)

type pathFunc func(ctx context.Context, req svcdto.PathRequest) ([]*big.Int, error)

func (s *Server) serveQuote(w http.ResponseWriter, r *http.Request, op, amountKey, reserveInKey, reserveOutKey string, fn quoteFunc) {
	req, code, err := validate.QuoteRequestValidate(r, amountKey, reserveInKey, reserveOutKey)
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	out, err := fn(ctx, *req)
	if err != nil {
		s.writeError(w, op, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(out.String())); err != nil {
		s.log.Warn("quote write error", zap.String("op", op), zap.Error(err))
	}
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	s.serveQuote(w, r, "quote", "amount_a", "reserve_a", "reserve_b", s.svc.Quote)
}

func (s *Server) handleAmountOut(w http.ResponseWriter, r *http.Request) {
	s.serveQuote(w, r, "amount-out", "amount_in", "reserve_in", "reserve_out", s.svc.AmountOut)
}

func (s *Server) handleAmountIn(w http.ResponseWriter, r *http.Request) {
	s.serveQuote(w, r, "amount-in", "amount_out", "reserve_in", "reserve_out", s.svc.AmountIn)
}

func (s *Server) servePath(w http.ResponseWriter, r *http.Request, op, amountKey string, fn pathFunc) {
	req, code, err := validate.PathRequestValidate(r, amountKey)
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	amounts, err := fn(ctx, *req)
	if err != nil {
		s.writeError(w, op, err)
		return
	}
	s.writeJSON(w, dto.AmountsResponse{Amounts: amountStrings(amounts)})
}

func (s *Server) handleAmountsOut(w http.ResponseWriter, r *http.Request) {
	s.servePath(w, r, "amounts-out", "amount_in", s.svc.AmountsOut)
}

func (s *Server) handleAmountsIn(w http.ResponseWriter, r *http.Request) {
	s.servePath(w, r, "amounts-in", "amount_out", s.svc.AmountsIn)
}

func amountStrings(amounts []*big.Int) []string {
	out := make([]string, len(amounts))
	for i, a := range amounts {
		out[i] = a.String()
	}
	return out
}
