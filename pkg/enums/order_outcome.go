package enums

import "fmt"

// OrderOutcome is the closed set of results an order submission can resolve to.
type OrderOutcome string

const (
	OrderOutcomeSuccess      OrderOutcome = "success"
	OrderOutcomeRejected     OrderOutcome = "rejected"
	OrderOutcomeFailure      OrderOutcome = "failure"
	OrderOutcomeNetworkError OrderOutcome = "network_error"
)

var validOrderOutcomes = []OrderOutcome{
	OrderOutcomeSuccess,
	OrderOutcomeRejected,
	OrderOutcomeFailure,
	OrderOutcomeNetworkError,
}

// String implements fmt.Stringer.
func (o OrderOutcome) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderOutcome.
func (o OrderOutcome) IsValid() bool {
	for _, candidate := range validOrderOutcomes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderOutcome converts raw input into an OrderOutcome.
func ParseOrderOutcome(value string) (OrderOutcome, error) {
	for _, candidate := range validOrderOutcomes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order outcome %q", value)
}
