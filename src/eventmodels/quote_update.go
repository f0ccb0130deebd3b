package eventmodels

// QuoteUpdate is a partial push record for a subscribed stock symbol.
type QuoteUpdate struct {
	Symbol StockSymbol `json:"symbol"`
	Price  *float64    `json:"price,omitempty"`
	Bid    *float64    `json:"bid,omitempty"`
	Ask    *float64    `json:"ask,omitempty"`
	Volume *int64      `json:"volume,omitempty"`
}
