package eventmodels

type PolygonTickerDetailsDTO struct {
	Ticker          string `json:"ticker"`
	Name            string `json:"name"`
	Market          string `json:"market"`
	PrimaryExchange string `json:"primary_exchange"`
	Description     string `json:"description"`
	HomepageURL     string `json:"homepage_url"`
	TotalEmployees  int    `json:"total_employees"`
}

func (dto *PolygonTickerDetailsDTO) ToProfile() Profile {
	return Profile{
		Symbol:      StockSymbol(dto.Ticker),
		Name:        dto.Name,
		Description: dto.Description,
		Market:      dto.Market,
		Exchange:    dto.PrimaryExchange,
		HomepageURL: dto.HomepageURL,
		Employees:   dto.TotalEmployees,
	}
}
