package http

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-router/internal/apperrors"
)

var badRequestErrors = []error{
	apperrors.ErrInvalidArgument,
	apperrors.ErrExpired,
	apperrors.ErrInsufficientAAmount,
	apperrors.ErrInsufficientBAmount,
	apperrors.ErrInsufficientOutputAmount,
	apperrors.ErrExcessiveInputAmount,
	apperrors.ErrInsufficientAmount,
	apperrors.ErrInsufficientInputAmount,
	apperrors.ErrInsufficientLiquidity,
	apperrors.ErrInsufficientLiquidityMinted,
	apperrors.ErrInsufficientLiquidityBurned,
	apperrors.ErrIdenticalAddresses,
	apperrors.ErrZeroAddress,
	apperrors.ErrK,
	apperrors.ErrInvalidPath,
	apperrors.ErrInvalidTo,
	apperrors.ErrInsufficientBalance,
	apperrors.ErrInsufficientAllowance,
	apperrors.ErrInvalidPermit,
	apperrors.ErrOverflow,
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrPairNotFound), errors.Is(err, apperrors.ErrContractNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrPairRead):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrLocked), errors.Is(err, apperrors.ErrPairExists):
		return http.StatusConflict
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Error(op, zap.Error(err))
		http.Error(w, "internal error", code)
		return
	}
	http.Error(w, err.Error(), code)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("json write error", zap.Error(err))
	}
}
