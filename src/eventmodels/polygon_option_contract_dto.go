package eventmodels

type PolygonOptionContractDTO struct {
	ContractType      string  `json:"contract_type"`
	ExerciseStyle     string  `json:"exercise_style"`
	ExpirationDate    string  `json:"expiration_date"`
	SharesPerContract int     `json:"shares_per_contract"`
	StrikePrice       float64 `json:"strike_price"`
	Ticker            string  `json:"ticker"`
	UnderlyingTicker  string  `json:"underlying_ticker"`
}

func (dto *PolygonOptionContractDTO) ToOptionContract() (*OptionContract, error) {
	optionType, err := NewOptionType(dto.ContractType)
	if err != nil {
		return nil, err
	}

	return &OptionContract{
		Symbol:           OptionSymbol(dto.Ticker),
		UnderlyingSymbol: StockSymbol(dto.UnderlyingTicker),
		ExpirationDate:   ExpirationDate(dto.ExpirationDate),
		Strike:           dto.StrikePrice,
		OptionType:       optionType,
		ContractSize:     dto.SharesPerContract,
	}, nil
}
