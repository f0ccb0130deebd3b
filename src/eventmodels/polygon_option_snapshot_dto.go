package eventmodels

type PolygonSnapshotDayDTO struct {
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Close         float64 `json:"close"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previous_close"`
	Volume        int64   `json:"volume"`
	VWAP          float64 `json:"vwap"`
}

type PolygonSnapshotGreeksDTO struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

type PolygonSnapshotQuoteDTO struct {
	Ask     float64 `json:"ask"`
	AskSize float64 `json:"ask_size"`
	Bid     float64 `json:"bid"`
	BidSize float64 `json:"bid_size"`
}

// PolygonOptionSnapshotDTO: greeks and implied_volatility are omitted by the
// provider outside market hours. Defaults stay zero.
type PolygonOptionSnapshotDTO struct {
	Day               *PolygonSnapshotDayDTO    `json:"day"`
	Greeks            *PolygonSnapshotGreeksDTO `json:"greeks"`
	ImpliedVolatility float64                   `json:"implied_volatility"`
	OpenInterest      int64                     `json:"open_interest"`
	LastQuote         *PolygonSnapshotQuoteDTO  `json:"last_quote"`
}

func (dto *PolygonSnapshotGreeksDTO) ToGreeks() Greeks {
	return Greeks{
		Delta: dto.Delta,
		Gamma: dto.Gamma,
		Theta: dto.Theta,
		Vega:  dto.Vega,
		Rho:   dto.Rho,
	}
}
