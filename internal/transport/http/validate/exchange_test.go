package validate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		target         string
		method         string
		expectedStatus int
		wantErr        assert.ErrorAssertionFunc
	}{
		{"valid", "/quote?amount_a=1&reserve_a=2&reserve_b=3", http.MethodGet, 0, assert.NoError},
		{"zero reserves allowed", "/quote?amount_a=1&reserve_a=0&reserve_b=0", http.MethodGet, 0, assert.NoError},
		{"zero amount", "/quote?amount_a=0&reserve_a=2&reserve_b=3", http.MethodGet, http.StatusBadRequest, assert.Error},
		{"negative reserve", "/quote?amount_a=1&reserve_a=-2&reserve_b=3", http.MethodGet, http.StatusBadRequest, assert.Error},
		{"missing reserve", "/quote?amount_a=1&reserve_a=2", http.MethodGet, http.StatusBadRequest, assert.Error},
		{"max u256 reserve", "/quote?amount_a=1&reserve_a=2&reserve_b=" + maxU256Dec, http.MethodGet, 0, assert.NoError},
		{"reserve past u256", "/quote?amount_a=1&reserve_a=2&reserve_b=" + twoTo256, http.MethodGet, http.StatusBadRequest, assert.Error},
		{"wrong method", "/quote?amount_a=1&reserve_a=2&reserve_b=3", http.MethodPut, http.StatusMethodNotAllowed, assert.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.target, nil)
			result, status, err := QuoteRequestValidate(req, "amount_a", "reserve_a", "reserve_b")

			tt.wantErr(t, err)
			require.Equal(t, tt.expectedStatus, status)
			if err != nil {
				require.Nil(t, result)
			}
		})
	}
}

func TestPathRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("three hop path", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/amounts-out?amount_in=10&path="+poolHex+","+srcHex+","+dstHex, nil)
		result, status, err := PathRequestValidate(req, "amount_in")

		require.NoError(t, err)
		require.Equal(t, 0, status)
		require.Equal(t, []common.Address{
			common.HexToAddress(poolHex), common.HexToAddress(srcHex), common.HexToAddress(dstHex),
		}, result.Path)
		require.Equal(t, int64(10), result.Amount.Int64())
	})

	t.Run("bad hop", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/amounts-out?amount_in=10&path="+poolHex+",nope", nil)
		result, status, err := PathRequestValidate(req, "amount_in")

		require.Error(t, err)
		require.Equal(t, http.StatusBadRequest, status)
		require.Nil(t, result)
	})
}

func TestSwapRequestValidate(t *testing.T) {
	t.Parallel()

	valid := `{"caller":"` + srcHex + `","amount_in":"5","amount_out_min":"1","path":["` + srcHex + `","` + dstHex + `"],"to":"` + srcHex + `","deadline":7}`

	tests := []struct {
		name           string
		method         string
		body           string
		expectedStatus int
		wantErr        assert.ErrorAssertionFunc
	}{
		{"valid", http.MethodPost, valid, 0, assert.NoError},
		{"wrong method", http.MethodGet, valid, http.StatusMethodNotAllowed, assert.Error},
		{"bad json", http.MethodPost, "{", http.StatusBadRequest, assert.Error},
		{"unknown field", http.MethodPost, `{"foo":1}`, http.StatusBadRequest, assert.Error},
		{"short path", http.MethodPost, strings.Replace(valid, `,"`+dstHex+`"`, "", 1), http.StatusBadRequest, assert.Error},
		{"zero amount in", http.MethodPost, strings.Replace(valid, `"amount_in":"5"`, `"amount_in":"0"`, 1), http.StatusBadRequest, assert.Error},
		{"bad caller", http.MethodPost, strings.Replace(valid, `"caller":"`+srcHex+`"`, `"caller":"x"`, 1), http.StatusBadRequest, assert.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/swap/exact-tokens-for-tokens", strings.NewReader(tt.body))
			result, status, err := SwapRequestValidate(req)

			tt.wantErr(t, err)
			require.Equal(t, tt.expectedStatus, status)
			if err == nil {
				require.Equal(t, uint64(7), result.Deadline)
				require.Equal(t, common.HexToAddress(srcHex), result.Caller)
				require.Len(t, result.Path, 2)
			}
		})
	}
}
