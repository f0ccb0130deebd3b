package eventmodels

// ContractUpdate is a partial record delivered on the push channel. Only
// non-nil fields are merged into the matching contract.
type ContractUpdate struct {
	Symbol            OptionSymbol `json:"symbol"`
	LastPrice         *float64     `json:"last_price,omitempty"`
	Bid               *float64     `json:"bid,omitempty"`
	Ask               *float64     `json:"ask,omitempty"`
	Volume            *int64       `json:"volume,omitempty"`
	OpenInterest      *int64       `json:"open_interest,omitempty"`
	ImpliedVolatility *float64     `json:"implied_volatility,omitempty"`
	Greeks            *Greeks      `json:"greeks,omitempty"`
}
