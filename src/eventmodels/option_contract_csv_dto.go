package eventmodels

type OptionContractCSVDTO struct {
	Symbol            string  `csv:"symbol"`
	UnderlyingSymbol  string  `csv:"underlying_symbol"`
	ExpirationDate    string  `csv:"expiration_date"`
	Strike            float64 `csv:"strike"`
	OptionType        string  `csv:"option_type"`
	LastPrice         float64 `csv:"last_price"`
	Bid               float64 `csv:"bid"`
	Ask               float64 `csv:"ask"`
	OpenInterest      int64   `csv:"open_interest"`
	Volume            int64   `csv:"volume"`
	ImpliedVolatility float64 `csv:"implied_volatility"`
	Delta             float64 `csv:"delta"`
	Gamma             float64 `csv:"gamma"`
	Theta             float64 `csv:"theta"`
	Vega              float64 `csv:"vega"`
	Rho               float64 `csv:"rho"`
}

func (c *OptionContract) ToCSVDTO() *OptionContractCSVDTO {
	return &OptionContractCSVDTO{
		Symbol:            string(c.Symbol),
		UnderlyingSymbol:  string(c.UnderlyingSymbol),
		ExpirationDate:    string(c.ExpirationDate),
		Strike:            c.Strike,
		OptionType:        string(c.OptionType),
		LastPrice:         c.LastPrice,
		Bid:               c.Bid,
		Ask:               c.Ask,
		OpenInterest:      c.OpenInterest,
		Volume:            c.Volume,
		ImpliedVolatility: c.ImpliedVolatility,
		Delta:             c.Greeks.Delta,
		Gamma:             c.Greeks.Gamma,
		Theta:             c.Greeks.Theta,
		Vega:              c.Greeks.Vega,
		Rho:               c.Greeks.Rho,
	}
}
