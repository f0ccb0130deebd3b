package eventmodels

import "time"

// OptionContract is identified by its contract Symbol. All other fields are
// mutated in place as push updates arrive.
type OptionContract struct {
	Symbol            OptionSymbol   `json:"symbol"`
	UnderlyingSymbol  StockSymbol    `json:"underlying_symbol"`
	ExpirationDate    ExpirationDate `json:"expiration_date"`
	Strike            float64        `json:"strike"`
	OptionType        OptionType     `json:"option_type"`
	ContractSize      int            `json:"contract_size"`
	LastPrice         float64        `json:"last_price"`
	Bid               float64        `json:"bid"`
	Ask               float64        `json:"ask"`
	OpenInterest      int64          `json:"open_interest"`
	Volume            int64          `json:"volume"`
	ImpliedVolatility float64        `json:"implied_volatility"`
	Greeks            Greeks         `json:"greeks"`
}

func (c *OptionContract) TimeUntilExpiration(now time.Time) (time.Duration, error) {
	exp, err := c.ExpirationDate.ToTime()
	if err != nil {
		return 0, err
	}

	return exp.Sub(now), nil
}

// ApplyUpdate merges the non-nil fields of a push update into the contract.
func (c *OptionContract) ApplyUpdate(update *ContractUpdate) {
	if update.LastPrice != nil {
		c.LastPrice = *update.LastPrice
	}

	if update.Bid != nil {
		c.Bid = *update.Bid
	}

	if update.Ask != nil {
		c.Ask = *update.Ask
	}

	if update.Volume != nil {
		c.Volume = *update.Volume
	}

	if update.OpenInterest != nil {
		c.OpenInterest = *update.OpenInterest
	}

	if update.ImpliedVolatility != nil {
		c.ImpliedVolatility = *update.ImpliedVolatility
	}

	if update.Greeks != nil {
		c.Greeks = *update.Greeks
	}
}
