package eventmodels

// OptionSymbol is the OCC-style contract ticker, e.g. O:SPY240920C00550000.
// It is the identity of an option contract.
type OptionSymbol string

func (s OptionSymbol) String() string {
	return string(s)
}
