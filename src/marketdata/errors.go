package marketdata

import "fmt"

// ProviderError is returned when the provider answers with a non-2xx status
// or a response with no result row. Transport failures are wrapped
// separately by each operation.
type ProviderError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: provider error, http code %d: %s", e.Op, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("%s: provider error: %s", e.Op, e.Message)
}

func newProviderError(op string, statusCode int, message string) *ProviderError {
	return &ProviderError{
		Op:         op,
		StatusCode: statusCode,
		Message:    message,
	}
}
