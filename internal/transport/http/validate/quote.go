package validate

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	svcdto "github.com/fleshka4/amm-router/internal/service/dto"
	"github.com/fleshka4/amm-router/internal/transport/http/dto"
)

// QuoteRequestValidate validates a single-pool calculation request whose
// amount and reserves are passed in the named query parameters.
func QuoteRequestValidate(r *http.Request, amountKey, reserveInKey, reserveOutKey string) (*svcdto.QuoteRequest, int, error) {
	if code, err := requireMethod(r, http.MethodGet); err != nil {
		return nil, code, err
	}
	q := r.URL.Query()
	amt, rIn, rOut := q.Get(amountKey), q.Get(reserveInKey), q.Get(reserveOutKey)
	if amt == "" || rIn == "" || rOut == "" {
		return nil, http.StatusBadRequest, errors.New("missing params")
	}
	amount, err := parseAmount(amountKey, amt, false)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	reserveIn, err := parseAmount(reserveInKey, rIn, true)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	reserveOut, err := parseAmount(reserveOutKey, rOut, true)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &svcdto.QuoteRequest{Amount: amount, ReserveIn: reserveIn, ReserveOut: reserveOut}, 0, nil
}

// PathRequestValidate validates a path quote request. path is a comma
// separated list of token addresses.
func PathRequestValidate(r *http.Request, amountKey string) (*svcdto.PathRequest, int, error) {
	if code, err := requireMethod(r, http.MethodGet); err != nil {
		return nil, code, err
	}
	q := r.URL.Query()
	amt, rawPath := q.Get(amountKey), q.Get("path")
	if amt == "" || rawPath == "" {
		return nil, http.StatusBadRequest, errors.New("missing params")
	}
	amount, err := parseAmount(amountKey, amt, false)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	parts := strings.Split(rawPath, ",")
	if len(parts) < 2 {
		return nil, http.StatusBadRequest, errors.New("path needs at least two tokens")
	}
	req := &svcdto.PathRequest{Amount: amount}
	for _, p := range parts {
		addr, err := parseAddress("path", strings.TrimSpace(p))
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		req.Path = append(req.Path, addr)
	}
	return req, 0, nil
}

// ReservesRequestValidate validates /reserves request.
func ReservesRequestValidate(r *http.Request) (*dto.ReservesRequest, int, error) {
	if code, err := requireMethod(r, http.MethodGet); err != nil {
		return nil, code, err
	}
	q := r.URL.Query()
	tokenA, err := parseAddress("token_a", q.Get("token_a"))
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	tokenB, err := parseAddress("token_b", q.Get("token_b"))
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &dto.ReservesRequest{TokenA: tokenA, TokenB: tokenB}, 0, nil
}
