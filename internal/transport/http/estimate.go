package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/fleshka4/amm-router/internal/service/dto"
	"github.com/fleshka4/amm-router/internal/transport/http/validate"
)

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.EstimateRequestValidate(r)
	if err != nil {
		if code == 0 {
			code = http.StatusBadRequest
		}
		http.Error(w, err.Error(), code)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	out, err := s.svc.Estimate(ctx, dto.EstimateRequest{
		Pool:      req.Pool,
		Src:       req.Src,
		Dst:       req.Dst,
		SrcAmount: req.SrcAmount,
	})
	if err != nil {
		s.writeError(w, "estimate", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(out.String())); err != nil {
		s.log.Warn("estimate write error", zap.Error(err))
	}
}
