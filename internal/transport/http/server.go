package http

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fleshka4/amm-router/internal/config"
	"github.com/fleshka4/amm-router/internal/service"
)

const defaultRequestTimeout = 8 * time.Second

// Server represents the HTTP transport layer.
type Server struct {
	svc     service.Service
	mux     *http.ServeMux
	log     *zap.Logger
	limiter *rate.Limiter

	graceTimeout      time.Duration
	readHeaderTimeout time.Duration
	requestTimeout    time.Duration
}

// Option configures Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithGatherer exposes the gatherer on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}
}

// NewServer creates a new HTTP server with registered routes.
func NewServer(svc service.Service, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		svc: svc,
		mux: http.NewServeMux(),
		log: zap.NewNop(),

		graceTimeout:      cfg.GraceTimeout,
		readHeaderTimeout: cfg.ReadHeaderTimeout,
		requestTimeout:    cfg.RequestTimeout,
	}
	if s.requestTimeout <= 0 {
		s.requestTimeout = defaultRequestTimeout
	}
	if cfg.RateLimit.RPS > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), burst)
	}

	s.mux.HandleFunc("/ping", s.handlePing)
	s.mux.HandleFunc("/estimate", s.handleEstimate)
	s.mux.HandleFunc("/quote", s.handleQuote)
	s.mux.HandleFunc("/amount-out", s.handleAmountOut)
	s.mux.HandleFunc("/amount-in", s.handleAmountIn)
	s.mux.HandleFunc("/amounts-out", s.handleAmountsOut)
	s.mux.HandleFunc("/amounts-in", s.handleAmountsIn)
	s.mux.HandleFunc("/reserves", s.handleReserves)
	s.mux.HandleFunc("/pairs", s.handlePairs)
	s.mux.HandleFunc("/tokens", s.handleTokens)
	s.mux.HandleFunc("/swap/exact-tokens-for-tokens", s.handleSwapExactTokensForTokens)
	s.mux.HandleFunc("/liquidity/add", s.handleAddLiquidity)

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler returns the routed handler wrapped with middleware.
func (s *Server) Handler() http.Handler {
	return s.logMiddleware(s.limitMiddleware(s.mux))
}

// ListenAndServe starts the HTTP server and enables graceful shutdown on
// SIGINT or SIGTERM.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readHeaderTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		return errors.Wrap(err, "srv.ListenAndServe")
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), s.graceTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "srv.Shutdown")
	}
	s.log.Info("server stopped gracefully")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logMiddleware logs each HTTP request and the time taken to process it.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) limitMiddleware(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		s.log.Warn("ping write error", zap.Error(err))
	}
}
