package validate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/service/dto"
)

// EstimateRequestValidate validates an estimate request against a pool.
func EstimateRequestValidate(req dto.EstimateRequest) error {
	if req.Pool == (common.Address{}) {
		return errors.Wrap(apperrors.ErrInvalidArgument, "pool cannot be empty")
	}
	if req.Src == (common.Address{}) || req.Dst == (common.Address{}) {
		return errors.Wrap(apperrors.ErrZeroAddress, "src and dst cannot be empty")
	}
	if req.Src == req.Dst {
		return errors.Wrap(apperrors.ErrIdenticalAddresses, "src and dst")
	}
	return positive("src_amount", req.SrcAmount)
}
