package eventmodels

// PolygonListResponse is the provider's envelope for list endpoints. Results
// is absent on empty or error responses.
type PolygonListResponse[T any] struct {
	Results      []T     `json:"results"`
	Status       string  `json:"status"`
	RequestId    string  `json:"request_id"`
	QueryCount   int     `json:"queryCount"`
	ResultsCount int     `json:"resultsCount"`
	NextURL      *string `json:"next_url"`
}

// PolygonObjectResponse is the envelope for endpoints whose results field is
// a single object. Results is nil on empty or error responses.
type PolygonObjectResponse[T any] struct {
	Results   *T     `json:"results"`
	Status    string `json:"status"`
	RequestId string `json:"request_id"`
}
