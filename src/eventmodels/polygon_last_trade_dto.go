package eventmodels

type PolygonLastTradeDTO struct {
	Ticker    string  `json:"T"`
	Price     float64 `json:"p"`
	Size      float64 `json:"s"`
	Timestamp int64   `json:"t"`
	Exchange  int     `json:"x"`
}
