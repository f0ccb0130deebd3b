package eventmodels

type SymbolMatch struct {
	Symbol   StockSymbol `json:"symbol"`
	Name     string      `json:"name"`
	Market   string      `json:"market"`
	Locale   string      `json:"locale"`
	Currency string      `json:"currency"`
}
