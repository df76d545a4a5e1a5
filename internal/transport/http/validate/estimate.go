package validate

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/dexmath"
	"github.com/fleshka4/amm-router/internal/transport/http/dto"
)

func requireMethod(r *http.Request, method string) (int, error) {
	if r.Method != method {
		return http.StatusMethodNotAllowed, errors.Errorf("method %s not allowed", r.Method)
	}
	return 0, nil
}

func parseAddress(name, v string) (common.Address, error) {
	if !common.IsHexAddress(v) {
		return common.Address{}, errors.Errorf("bad %s address format", name)
	}
	return common.HexToAddress(v), nil
}

func parseAmount(name, v string, allowZero bool) (*big.Int, error) {
	a, ok := new(big.Int).SetString(v, 10)
	if !ok || a.Sign() < 0 || (!allowZero && a.Sign() == 0) {
		return nil, errors.Errorf("bad %s", name)
	}
	if !dexmath.FitsU256(a) {
		return nil, errors.Errorf("%s exceeds 256 bits", name)
	}
	return a, nil
}

// EstimateRequestValidate validates /estimate request and returns dto.
func EstimateRequestValidate(r *http.Request) (*dto.EstimateRequest, int, error) {
	if code, err := requireMethod(r, http.MethodGet); err != nil {
		return nil, code, err
	}
	q := r.URL.Query()
	p := q.Get("pool")
	src := q.Get("src")
	dst := q.Get("dst")
	amt := q.Get("src_amount")
	if p == "" || src == "" || dst == "" || amt == "" {
		return nil, http.StatusBadRequest, errors.New("missing params")
	}
	if !common.IsHexAddress(p) || !common.IsHexAddress(src) || !common.IsHexAddress(dst) {
		return nil, http.StatusBadRequest, errors.New("bad address format")
	}
	a, err := parseAmount("src_amount", amt, false)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &dto.EstimateRequest{
		Pool:      common.HexToAddress(p),
		Src:       common.HexToAddress(src),
		Dst:       common.HexToAddress(dst),
		SrcAmount: a,
	}, 0, nil
}
