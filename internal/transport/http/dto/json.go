package dto

// SwapBody is the JSON body of POST /swap/exact-tokens-for-tokens.
// Amounts are decimal strings.
type SwapBody struct {
	Caller       string   `json:"caller"`
	AmountIn     string   `json:"amount_in"`
	AmountOutMin string   `json:"amount_out_min"`
	Path         []string `json:"path"`
	To           string   `json:"to"`
	Deadline     uint64   `json:"deadline"`
}

// AddLiquidityBody is the JSON body of POST /liquidity/add.
type AddLiquidityBody struct {
	Caller         string `json:"caller"`
	TokenA         string `json:"token_a"`
	TokenB         string `json:"token_b"`
	AmountADesired string `json:"amount_a_desired"`
	AmountBDesired string `json:"amount_b_desired"`
	AmountAMin     string `json:"amount_a_min"`
	AmountBMin     string `json:"amount_b_min"`
	To             string `json:"to"`
	Deadline       uint64 `json:"deadline"`
}

// AmountsResponse lists the amounts at every hop of a path.
type AmountsResponse struct {
	Amounts []string `json:"amounts"`
}

// ReservesResponse holds pool reserves in the requested orientation.
type ReservesResponse struct {
	TokenA   string `json:"token_a"`
	TokenB   string `json:"token_b"`
	ReserveA string `json:"reserve_a"`
	ReserveB string `json:"reserve_b"`
}

// PairResponse describes a pair.
type PairResponse struct {
	Address     string `json:"address"`
	Token0      string `json:"token0"`
	Token1      string `json:"token1"`
	Reserve0    string `json:"reserve0"`
	Reserve1    string `json:"reserve1"`
	TotalSupply string `json:"total_supply"`
}

// TokenResponse describes a token.
type TokenResponse struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// AddLiquidityResponse holds the settled deposit.
type AddLiquidityResponse struct {
	AmountA   string `json:"amount_a"`
	AmountB   string `json:"amount_b"`
	Liquidity string `json:"liquidity"`
}
