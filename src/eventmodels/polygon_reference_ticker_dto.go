package eventmodels

type PolygonReferenceTickerDTO struct {
	Ticker          string `json:"ticker"`
	Name            string `json:"name"`
	Market          string `json:"market"`
	Locale          string `json:"locale"`
	PrimaryExchange string `json:"primary_exchange"`
	Type            string `json:"type"`
	Active          bool   `json:"active"`
	CurrencyName    string `json:"currency_name"`
}

func (dto *PolygonReferenceTickerDTO) ToSymbolMatch() SymbolMatch {
	return SymbolMatch{
		Symbol:   StockSymbol(dto.Ticker),
		Name:     dto.Name,
		Market:   dto.Market,
		Locale:   dto.Locale,
		Currency: dto.CurrencyName,
	}
}
