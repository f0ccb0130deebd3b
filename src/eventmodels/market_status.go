package eventmodels

import "time"

type MarketStatus struct {
	Market     string            `json:"market"`
	EarlyHours bool              `json:"early_hours"`
	AfterHours bool              `json:"after_hours"`
	Exchanges  map[string]string `json:"exchanges"`
	ServerTime time.Time         `json:"server_time"`
}

func (s *MarketStatus) IsOpen() bool {
	return s.Market == "open"
}

// NewClosedMarketStatus is the degrade-gracefully default returned when the
// market status endpoint cannot be reached.
func NewClosedMarketStatus(now time.Time) *MarketStatus {
	return &MarketStatus{
		Market:     "closed",
		EarlyHours: false,
		AfterHours: false,
		Exchanges:  map[string]string{},
		ServerTime: now,
	}
}
