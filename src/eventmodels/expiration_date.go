package eventmodels

import "time"

// ExpirationDate is an ISO calendar date (YYYY-MM-DD). The format sorts
// lexicographically in chronological order.
type ExpirationDate string

func (d ExpirationDate) ToTime() (time.Time, error) {
	return time.Parse("2006-01-02", string(d))
}
