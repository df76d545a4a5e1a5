package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
listen_addr: ":8080"
request_timeout: 2s
log_level: debug
rate_limit:
  rps: 10
chain_id: 7
amm:
  operator: "0x00000000000000000000000000000000000000aa"
  minimum_liquidity: 10
genesis:
  tokens:
    - symbol: TKA
      name: Token A
      decimals: 18
  accounts:
    - address: "0x00000000000000000000000000000000000000b0"
      approve_router: true
      balances:
        CSPR: "100"
        TKA: "200"
  pools:
    - token_a: TKA
      token_b: CSPR
      amount_a: "10"
      amount_b: "20"
mirror:
  pairs: ["0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.GraceTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, int64(7), cfg.ChainID)
	assert.Equal(t, int64(10), cfg.AMM.MinimumLiquidity)
	require.Len(t, cfg.Genesis.Tokens, 1)
	assert.Equal(t, uint8(18), cfg.Genesis.Tokens[0].Decimals)
	require.Len(t, cfg.Genesis.Accounts, 1)
	assert.True(t, cfg.Genesis.Accounts[0].ApproveRouter)
	assert.Equal(t, "100", cfg.Genesis.Accounts[0].Balances[NativeSymbol])
	require.Len(t, cfg.Genesis.Pools, 1)
	assert.Equal(t, NativeSymbol, cfg.Genesis.Pools[0].TokenB)
	assert.Equal(t, 5*time.Second, cfg.Mirror.CallTimeout)
	assert.Len(t, cfg.Mirror.Pairs, 1)
}

func TestLoad_Fallbacks(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "rate_limit:\n  rps: 0.5\n"))
	require.NoError(t, err)

	assert.Equal(t, ":1337", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(1), cfg.ChainID)
	assert.Equal(t, int64(1000), cfg.AMM.MinimumLiquidity)
	assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, 1, cfg.RateLimit.Burst)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "listen_addr: [unclosed"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "request_timeout: soon"))
	require.Error(t, err)
}
