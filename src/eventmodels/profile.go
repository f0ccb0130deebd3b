package eventmodels

type Profile struct {
	Symbol      StockSymbol `json:"symbol"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Market      string      `json:"market"`
	Exchange    string      `json:"exchange"`
	HomepageURL string      `json:"homepage_url"`
	Employees   int         `json:"employees"`
}
