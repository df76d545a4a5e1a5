package validate

import (
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	svcdto "github.com/fleshka4/amm-router/internal/service/dto"
	"github.com/fleshka4/amm-router/internal/transport/http/dto"
)

const maxBodyBytes = 1 << 16

func decodeBody(r *http.Request, v any) (int, error) {
	if code, err := requireMethod(r, http.MethodPost); err != nil {
		return code, err
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return http.StatusBadRequest, errors.Wrap(err, "bad json body")
	}
	return 0, nil
}

// SwapRequestValidate validates POST /swap/exact-tokens-for-tokens and returns
// the service request.
func SwapRequestValidate(r *http.Request) (*svcdto.SwapRequest, int, error) {
	var body dto.SwapBody
	if code, err := decodeBody(r, &body); err != nil {
		return nil, code, err
	}

	caller, err := parseAddress("caller", body.Caller)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	to, err := parseAddress("to", body.To)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	amountIn, err := parseAmount("amount_in", body.AmountIn, false)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	amountOutMin, err := parseAmount("amount_out_min", body.AmountOutMin, true)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	if len(body.Path) < 2 {
		return nil, http.StatusBadRequest, errors.New("path needs at least two tokens")
	}
	path := make([]common.Address, 0, len(body.Path))
	for _, p := range body.Path {
		addr, err := parseAddress("path", p)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		path = append(path, addr)
	}

	return &svcdto.SwapRequest{
		Caller:       caller,
		AmountIn:     amountIn,
		AmountOutMin: amountOutMin,
		Path:         path,
		To:           to,
		Deadline:     body.Deadline,
	}, 0, nil
}

// AddLiquidityRequestValidate validates POST /liquidity/add and returns the
// service request.
func AddLiquidityRequestValidate(r *http.Request) (*svcdto.AddLiquidityRequest, int, error) {
	var body dto.AddLiquidityBody
	if code, err := decodeBody(r, &body); err != nil {
		return nil, code, err
	}

	req := &svcdto.AddLiquidityRequest{Deadline: body.Deadline}
	addrs := []struct {
		name string
		raw  string
		dst  *common.Address
	}{
		{"caller", body.Caller, &req.Caller},
		{"token_a", body.TokenA, &req.TokenA},
		{"token_b", body.TokenB, &req.TokenB},
		{"to", body.To, &req.To},
	}
	for _, a := range addrs {
		addr, err := parseAddress(a.name, a.raw)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		*a.dst = addr
	}

	var err error
	if req.AmountADesired, err = parseAmount("amount_a_desired", body.AmountADesired, false); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if req.AmountBDesired, err = parseAmount("amount_b_desired", body.AmountBDesired, false); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if req.AmountAMin, err = parseAmount("amount_a_min", body.AmountAMin, true); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if req.AmountBMin, err = parseAmount("amount_b_min", body.AmountBMin, true); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return req, 0, nil
}
