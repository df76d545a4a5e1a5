package service

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-router/internal/infra/uniswap"
	"github.com/fleshka4/amm-router/internal/ledger"
	"github.com/fleshka4/amm-router/internal/router"
	"github.com/fleshka4/amm-router/internal/service/dto"
	"github.com/fleshka4/amm-router/internal/uniswapv2"
)

// Service represents interface for business logic.
type Service interface {
	Estimate(ctx context.Context, req dto.EstimateRequest) (*big.Int, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (*big.Int, error)
	AmountOut(ctx context.Context, req dto.QuoteRequest) (*big.Int, error)
	AmountIn(ctx context.Context, req dto.QuoteRequest) (*big.Int, error)
	AmountsOut(ctx context.Context, req dto.PathRequest) ([]*big.Int, error)
	AmountsIn(ctx context.Context, req dto.PathRequest) ([]*big.Int, error)
	Reserves(ctx context.Context, tokenA, tokenB common.Address) (*dto.Reserves, error)
	Pairs(ctx context.Context) ([]dto.Pair, error)
	Tokens(ctx context.Context) ([]dto.Token, error)
	SwapExactTokensForTokens(ctx context.Context, req dto.SwapRequest) ([]*big.Int, error)
	AddLiquidity(ctx context.Context, req dto.AddLiquidityRequest) (*dto.AddLiquidityResult, error)
}

// ChainReader reads real Uniswap V2 pairs to mirror them locally.
type ChainReader interface {
	GetPairSnapshots(ctx context.Context, pairs []common.Address) ([]uniswap.PairSnapshot, error)
}

// ExchangeService represents struct for business logic over the local ledger.
type ExchangeService struct {
	ledger *ledger.Ledger
	router *router.Router
	reader uniswapv2.PairReader
	tokens []common.Address

	log *zap.Logger
}

// NewExchangeService creates ExchangeService. reader serves Estimate.
func NewExchangeService(l *ledger.Ledger, r *router.Router, reader uniswapv2.PairReader, log *zap.Logger) *ExchangeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExchangeService{
		ledger: l,
		router: r,
		reader: reader,
		log:    log,
	}
}

// Router returns the deployed router.
func (s *ExchangeService) Router() *router.Router {
	return s.router
}

// Ledger returns the ledger the exchange runs on.
func (s *ExchangeService) Ledger() *ledger.Ledger {
	return s.ledger
}
