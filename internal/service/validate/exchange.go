package validate

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/service/dto"
)

func positive(name string, v *big.Int) error {
	if v == nil || v.Sign() <= 0 {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "%s must be positive", name)
	}
	return nil
}

// QuoteRequestValidate validates a single-pool calculation request.
func QuoteRequestValidate(req dto.QuoteRequest) error {
	if err := positive("amount", req.Amount); err != nil {
		return err
	}
	if req.ReserveIn == nil || req.ReserveOut == nil || req.ReserveIn.Sign() < 0 || req.ReserveOut.Sign() < 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "reserves cannot be empty or negative")
	}
	return nil
}

// PathRequestValidate validates a path quote request.
func PathRequestValidate(req dto.PathRequest) error {
	if err := positive("amount", req.Amount); err != nil {
		return err
	}
	return pathValidate(req.Path)
}

// SwapRequestValidate validates a swap request.
func SwapRequestValidate(req dto.SwapRequest) error {
	var zeroAddress = common.Address{}

	if req.Caller == zeroAddress || req.To == zeroAddress {
		return errors.Wrap(apperrors.ErrInvalidArgument, "caller and to cannot be empty")
	}
	if err := positive("amount_in", req.AmountIn); err != nil {
		return err
	}
	if req.AmountOutMin == nil || req.AmountOutMin.Sign() < 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "amount_out_min cannot be empty or negative")
	}
	if req.Deadline == 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "deadline is required")
	}
	return pathValidate(req.Path)
}

func pathValidate(path []common.Address) error {
	if len(path) < 2 {
		return errors.Wrap(apperrors.ErrInvalidPath, "path needs at least two tokens")
	}
	for i, addr := range path {
		if addr == (common.Address{}) {
			return errors.Wrapf(apperrors.ErrInvalidArgument, "path[%d] is empty", i)
		}
		if i > 0 && path[i-1] == addr {
			return errors.Wrapf(apperrors.ErrInvalidPath, "path[%d] repeats the previous token", i)
		}
	}
	return nil
}
