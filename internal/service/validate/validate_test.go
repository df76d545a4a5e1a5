package validate

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/service/dto"
)

var (
	tokenA = common.HexToAddress("0x6B175474E89094C44Da98b954EedeAC495271d0F")
	tokenB = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	tokenC = common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
	user   = common.HexToAddress("0x00000000000000000000000000000000000000b0")
)

func TestEstimateRequestValidate(t *testing.T) {
	t.Parallel()

	valid := func() dto.EstimateRequest {
		return dto.EstimateRequest{
			Pool:      common.HexToAddress("0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"),
			Src:       tokenA,
			Dst:       tokenB,
			SrcAmount: big.NewInt(1),
		}
	}

	tests := []struct {
		name    string
		mutate  func(req *dto.EstimateRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(*dto.EstimateRequest) {}},
		{name: "huge amount", mutate: func(req *dto.EstimateRequest) {
			req.SrcAmount = new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil)
		}},
		{name: "no pool", mutate: func(req *dto.EstimateRequest) { req.Pool = common.Address{} }, wantErr: apperrors.ErrInvalidArgument},
		{name: "no src", mutate: func(req *dto.EstimateRequest) { req.Src = common.Address{} }, wantErr: apperrors.ErrZeroAddress},
		{name: "no dst", mutate: func(req *dto.EstimateRequest) { req.Dst = common.Address{} }, wantErr: apperrors.ErrZeroAddress},
		{name: "src is dst", mutate: func(req *dto.EstimateRequest) { req.Dst = req.Src }, wantErr: apperrors.ErrIdenticalAddresses},
		{name: "nil amount", mutate: func(req *dto.EstimateRequest) { req.SrcAmount = nil }, wantErr: apperrors.ErrInvalidArgument},
		{name: "zero amount", mutate: func(req *dto.EstimateRequest) { req.SrcAmount = new(big.Int) }, wantErr: apperrors.ErrInvalidArgument},
		{name: "negative amount", mutate: func(req *dto.EstimateRequest) { req.SrcAmount = big.NewInt(-1) }, wantErr: apperrors.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := valid()
			tt.mutate(&req)
			err := EstimateRequestValidate(req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQuoteRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     dto.QuoteRequest
		wantErr bool
	}{
		{name: "valid", req: dto.QuoteRequest{Amount: big.NewInt(1), ReserveIn: big.NewInt(10), ReserveOut: big.NewInt(10)}},
		// empty pools are rejected by the math itself, not here.
		{name: "empty reserves", req: dto.QuoteRequest{Amount: big.NewInt(1), ReserveIn: new(big.Int), ReserveOut: new(big.Int)}},
		{name: "zero amount", req: dto.QuoteRequest{Amount: new(big.Int), ReserveIn: big.NewInt(10), ReserveOut: big.NewInt(10)}, wantErr: true},
		{name: "nil reserve", req: dto.QuoteRequest{Amount: big.NewInt(1), ReserveOut: big.NewInt(10)}, wantErr: true},
		{name: "negative reserve", req: dto.QuoteRequest{Amount: big.NewInt(1), ReserveIn: big.NewInt(10), ReserveOut: big.NewInt(-10)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := QuoteRequestValidate(tt.req)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}
}

func TestPathRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    []common.Address
		wantErr error
	}{
		{name: "two hops", path: []common.Address{tokenA, tokenB, tokenC}},
		{name: "round trip", path: []common.Address{tokenA, tokenB, tokenA}},
		{name: "single token", path: []common.Address{tokenA}, wantErr: apperrors.ErrInvalidPath},
		{name: "repeated token", path: []common.Address{tokenA, tokenA}, wantErr: apperrors.ErrInvalidPath},
		{name: "zero token", path: []common.Address{tokenA, {}}, wantErr: apperrors.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := PathRequestValidate(dto.PathRequest{Amount: big.NewInt(5), Path: tt.path})
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	require.ErrorIs(t, PathRequestValidate(dto.PathRequest{Path: []common.Address{tokenA, tokenB}}), apperrors.ErrInvalidArgument)
}

func TestSwapRequestValidate(t *testing.T) {
	t.Parallel()

	valid := func() dto.SwapRequest {
		return dto.SwapRequest{
			Caller:       user,
			AmountIn:     big.NewInt(100),
			AmountOutMin: new(big.Int),
			Path:         []common.Address{tokenA, tokenB},
			To:           user,
			Deadline:     1,
		}
	}
	require.NoError(t, SwapRequestValidate(valid()))

	tests := []struct {
		name    string
		mutate  func(req *dto.SwapRequest)
		wantErr error
	}{
		{name: "no caller", mutate: func(req *dto.SwapRequest) { req.Caller = common.Address{} }, wantErr: apperrors.ErrInvalidArgument},
		{name: "no recipient", mutate: func(req *dto.SwapRequest) { req.To = common.Address{} }, wantErr: apperrors.ErrInvalidArgument},
		{name: "zero amount in", mutate: func(req *dto.SwapRequest) { req.AmountIn = new(big.Int) }, wantErr: apperrors.ErrInvalidArgument},
		{name: "no min out", mutate: func(req *dto.SwapRequest) { req.AmountOutMin = nil }, wantErr: apperrors.ErrInvalidArgument},
		{name: "no deadline", mutate: func(req *dto.SwapRequest) { req.Deadline = 0 }, wantErr: apperrors.ErrInvalidArgument},
		{name: "short path", mutate: func(req *dto.SwapRequest) { req.Path = req.Path[:1] }, wantErr: apperrors.ErrInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := valid()
			tt.mutate(&req)
			require.ErrorIs(t, SwapRequestValidate(req), tt.wantErr)
		})
	}
}
