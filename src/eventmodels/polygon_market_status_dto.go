package eventmodels

import "time"

type PolygonMarketStatusDTO struct {
	Market     string            `json:"market"`
	EarlyHours bool              `json:"earlyHours"`
	AfterHours bool              `json:"afterHours"`
	Exchanges  map[string]string `json:"exchanges"`
	ServerTime string            `json:"serverTime"`
}

func (dto *PolygonMarketStatusDTO) ToMarketStatus() *MarketStatus {
	serverTime, err := time.Parse(time.RFC3339, dto.ServerTime)
	if err != nil {
		serverTime = time.Now().UTC()
	}

	exchanges := dto.Exchanges
	if exchanges == nil {
		exchanges = map[string]string{}
	}

	return &MarketStatus{
		Market:     dto.Market,
		EarlyHours: dto.EarlyHours,
		AfterHours: dto.AfterHours,
		Exchanges:  exchanges,
		ServerTime: serverTime,
	}
}
