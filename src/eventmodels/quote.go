package eventmodels

import "time"

// Quote is the derived snapshot for a stock symbol. Change and ChangePercent
// are computed client side from Price and PreviousClose.
type Quote struct {
	Symbol        StockSymbol `json:"symbol"`
	Price         float64     `json:"price"`
	PreviousClose float64     `json:"previous_close"`
	Change        float64     `json:"change"`
	ChangePercent float64     `json:"change_percent"`
	High          float64     `json:"high"`
	Low           float64     `json:"low"`
	Volume        int64       `json:"volume"`
	Timestamp     time.Time   `json:"timestamp"`
}
