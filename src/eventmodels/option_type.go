package eventmodels

import "fmt"

type OptionType string

const (
	OptionTypeCall OptionType = "call"
	OptionTypePut  OptionType = "put"
)

func NewOptionType(s string) (OptionType, error) {
	switch OptionType(s) {
	case OptionTypeCall:
		return OptionTypeCall, nil
	case OptionTypePut:
		return OptionTypePut, nil
	default:
		return "", fmt.Errorf("NewOptionType: invalid option type: %s", s)
	}
}
