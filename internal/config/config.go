package config

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// NativeSymbol names the native currency in genesis pools and balances.
const NativeSymbol = "CSPR"

// Config holds application configuration loaded from file.
type Config struct {
	ListenAddr        string        `yaml:"listen_addr"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	LogLevel          string        `yaml:"log_level"`
	RateLimit         RateLimit     `yaml:"rate_limit"`

	ChainID int64   `yaml:"chain_id"`
	AMM     AMM     `yaml:"amm"`
	Genesis Genesis `yaml:"genesis"`
	Mirror  Mirror  `yaml:"mirror"`
}

// RateLimit configures the HTTP token bucket. Zero RPS disables it.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// AMM configures the deployed contracts.
type AMM struct {
	// Operator deploys the contracts and seeds genesis pools.
	Operator         string `yaml:"operator"`
	MinimumLiquidity int64  `yaml:"minimum_liquidity"`
}

// Genesis describes the initial ledger state.
type Genesis struct {
	Tokens   []Token   `yaml:"tokens"`
	Accounts []Account `yaml:"accounts"`
	Pools    []Pool    `yaml:"pools"`
}

// Token is a fungible token deployed at genesis. Address is optional.
type Token struct {
	Symbol   string `yaml:"symbol"`
	Name     string `yaml:"name"`
	Decimals uint8  `yaml:"decimals"`
	Address  string `yaml:"address"`
}

// Account is funded at genesis. Balances map token symbols (or CSPR) to
// decimal amounts.
type Account struct {
	Address       string            `yaml:"address"`
	Balances      map[string]string `yaml:"balances"`
	ApproveRouter bool              `yaml:"approve_router"`
}

// Pool is seeded by the operator at genesis.
type Pool struct {
	TokenA  string `yaml:"token_a"`
	TokenB  string `yaml:"token_b"`
	AmountA string `yaml:"amount_a"`
	AmountB string `yaml:"amount_b"`
}

// Mirror copies real Uniswap V2 pairs into the local ledger at startup.
type Mirror struct {
	RPCURL      string        `yaml:"rpc_url"`
	CallTimeout time.Duration `yaml:"call_timeout"`
	Pairs       []string      `yaml:"pairs"`
}

// Load reads the config from a YAML file path and applies fallbacks.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "os.Open")
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			log.Printf("failed to close config file: f.Close: %v", err)
		}
	}(f)

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoder.Decode")
	}

	cfg.applyFallbacks()
	return cfg, nil
}

func (cfg *Config) applyFallbacks() {
	const defaultTimeout = 5 * time.Second
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":1337"
	}
	if cfg.GraceTimeout == 0 {
		cfg.GraceTimeout = defaultTimeout
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	if cfg.ReadHeaderTimeout == 0 {
		cfg.ReadHeaderTimeout = defaultTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = 1
	}
	if cfg.AMM.MinimumLiquidity == 0 {
		cfg.AMM.MinimumLiquidity = 1000
	}
	if cfg.Mirror.CallTimeout == 0 {
		cfg.Mirror.CallTimeout = defaultTimeout
	}
	if cfg.RateLimit.RPS > 0 && cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = int(cfg.RateLimit.RPS)
		if cfg.RateLimit.Burst < 1 {
			cfg.RateLimit.Burst = 1
		}
	}
}
