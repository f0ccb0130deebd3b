package eventmodels

import "time"

type PolygonAggregateBarDTO struct {
	Ticker       string  `json:"T"`
	Open         float64 `json:"o"`
	High         float64 `json:"h"`
	Low          float64 `json:"l"`
	Close        float64 `json:"c"`
	Volume       float64 `json:"v"`
	VWAP         float64 `json:"vw"`
	Time         int64   `json:"t"`
	Transactions int     `json:"n"`
}

func (dto *PolygonAggregateBarDTO) ToBar() Bar {
	return Bar{
		Timestamp: time.UnixMilli(dto.Time).UTC(),
		Open:      dto.Open,
		High:      dto.High,
		Low:       dto.Low,
		Close:     dto.Close,
		Volume:    dto.Volume,
	}
}
