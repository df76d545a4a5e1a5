package main

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-router/internal/config"
	"github.com/fleshka4/amm-router/internal/infra/uniswap"
	"github.com/fleshka4/amm-router/internal/logging"
	"github.com/fleshka4/amm-router/internal/metrics"
	"github.com/fleshka4/amm-router/internal/service"
	transport "github.com/fleshka4/amm-router/internal/transport/http"
)

const metricsNamespace = "amm"

func defaultConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "cfg/config.yaml"
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Bootstrap the ledger and serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath, debug)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath(), "path to the YAML config")
	cmd.Flags().BoolVar(&debug, "debug", false, "development logging")

	return cmd
}

func serve(ctx context.Context, configPath string, debug bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "config.Load")
	}

	log, err := logging.New(cfg.LogLevel, debug)
	if err != nil {
		return errors.Wrap(err, "logging.New")
	}
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, metricsNamespace)

	opts := service.BootstrapOptions{Logger: log, Metrics: m}
	if cfg.Mirror.RPCURL != "" {
		client, err := uniswap.NewClient(cfg.Mirror.RPCURL, cfg.Mirror.CallTimeout)
		if err != nil {
			return errors.Wrap(err, "uniswap.NewClient")
		}
		opts.Chain = client
	}

	svc, err := service.Bootstrap(ctx, cfg, opts)
	if err != nil {
		return errors.Wrap(err, "service.Bootstrap")
	}

	srv := transport.NewServer(svc, cfg,
		transport.WithLogger(log.Named("http")),
		transport.WithGatherer(reg))

	log.Info("serving", zap.String("addr", cfg.ListenAddr))
	if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
		return errors.Wrap(err, "srv.ListenAndServe")
	}
	return nil
}
