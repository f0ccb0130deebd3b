package eventmodels

// Greeks travel as one value: a partial update never splits them, and a
// failed enrichment resets all five together.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}
