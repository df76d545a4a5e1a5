package validate

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const (
	poolHex = "0xB4e16d0168e52d35CaCD2c6185b44281Ec28C9Dc"
	srcHex  = "0x6B175474E89094C44Da98b954EedeAC495271d0F"
	dstHex  = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"

	maxU256Dec = "115792089237316195423570985008687907853269984665640564039457584007913129639935"
	twoTo256   = "115792089237316195423570985008687907853269984665640564039457584007913129639936"
)

func estimateQuery(drop string, override map[string]string) string {
	q := url.Values{}
	for k, v := range map[string]string{"pool": poolHex, "src": srcHex, "dst": dstHex, "src_amount": "1000"} {
		if k != drop {
			q.Set(k, v)
		}
	}
	for k, v := range override {
		q.Set(k, v)
	}
	return "/estimate?" + q.Encode()
}

func TestEstimateRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{"valid", http.MethodGet, estimateQuery("", nil), 0},
		{"huge amount", http.MethodGet, estimateQuery("", map[string]string{"src_amount": "1000000000000000000000000000000"}), 0},
		{"max u256 amount", http.MethodGet, estimateQuery("", map[string]string{"src_amount": maxU256Dec}), 0},
		{"amount past u256", http.MethodGet, estimateQuery("", map[string]string{"src_amount": twoTo256}), http.StatusBadRequest},
		{"post", http.MethodPost, estimateQuery("", nil), http.StatusMethodNotAllowed},
		{"no pool", http.MethodGet, estimateQuery("pool", nil), http.StatusBadRequest},
		{"no src", http.MethodGet, estimateQuery("src", nil), http.StatusBadRequest},
		{"no amount", http.MethodGet, estimateQuery("src_amount", nil), http.StatusBadRequest},
		{"bad dst", http.MethodGet, estimateQuery("", map[string]string{"dst": "0x123"}), http.StatusBadRequest},
		{"zero amount", http.MethodGet, estimateQuery("", map[string]string{"src_amount": "0"}), http.StatusBadRequest},
		{"hex amount", http.MethodGet, estimateQuery("", map[string]string{"src_amount": "0x10"}), http.StatusBadRequest},
		{"fractional amount", http.MethodGet, estimateQuery("", map[string]string{"src_amount": "1.5"}), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, status, err := EstimateRequestValidate(httptest.NewRequest(tt.method, tt.target, nil))
			require.Equal(t, tt.wantStatus, status)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				require.Nil(t, req)
				return
			}
			require.NoError(t, err)
			require.Equal(t, common.HexToAddress(poolHex), req.Pool)
			require.Equal(t, common.HexToAddress(srcHex), req.Src)
			require.Equal(t, common.HexToAddress(dstHex), req.Dst)
			require.Positive(t, req.SrcAmount.Sign())
		})
	}
}

func TestReservesRequestValidate(t *testing.T) {
	t.Parallel()

	req, status, err := ReservesRequestValidate(httptest.NewRequest(http.MethodGet,
		"/reserves?token_a="+srcHex+"&token_b="+dstHex, nil))
	require.NoError(t, err)
	require.Zero(t, status)
	require.Equal(t, common.HexToAddress(srcHex), req.TokenA)
	require.Equal(t, common.HexToAddress(dstHex), req.TokenB)

	_, status, err = ReservesRequestValidate(httptest.NewRequest(http.MethodGet, "/reserves?token_a="+srcHex, nil))
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, status)

	_, status, err = ReservesRequestValidate(httptest.NewRequest(http.MethodDelete, "/reserves", nil))
	require.Error(t, err)
	require.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestAddLiquidityRequestValidate(t *testing.T) {
	t.Parallel()

	body := func(amountA string) string {
		return `{"caller":"` + poolHex + `","token_a":"` + srcHex + `","token_b":"` + dstHex +
			`","amount_a_desired":"` + amountA + `","amount_b_desired":"400","amount_a_min":"0","amount_b_min":"0",` +
			`"to":"` + poolHex + `","deadline":1700000060}`
	}

	req, status, err := AddLiquidityRequestValidate(httptest.NewRequest(http.MethodPost, "/liquidity/add",
		strings.NewReader(body("300"))))
	require.NoError(t, err)
	require.Zero(t, status)
	require.Equal(t, common.HexToAddress(poolHex), req.Caller)
	require.Equal(t, "300", req.AmountADesired.String())
	require.Zero(t, req.AmountAMin.Sign())
	require.Equal(t, uint64(1700000060), req.Deadline)

	_, status, err = AddLiquidityRequestValidate(httptest.NewRequest(http.MethodPost, "/liquidity/add",
		strings.NewReader(body("0"))))
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, status)

	_, status, err = AddLiquidityRequestValidate(httptest.NewRequest(http.MethodPost, "/liquidity/add",
		strings.NewReader(`{"caller":"`+poolHex+`","extra":1}`)))
	require.Error(t, err)
	require.Equal(t, http.StatusBadRequest, status)

	_, status, err = AddLiquidityRequestValidate(httptest.NewRequest(http.MethodGet, "/liquidity/add", nil))
	require.Error(t, err)
	require.Equal(t, http.StatusMethodNotAllowed, status)
}
