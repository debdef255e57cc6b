package enums

import "fmt"

// LoginOutcome is the closed set of results an admin login can resolve to.
type LoginOutcome string

const (
	LoginOutcomeAuthenticated LoginOutcome = "authenticated"
	LoginOutcomeDenied        LoginOutcome = "denied"
	LoginOutcomeNetworkError  LoginOutcome = "network_error"
)

var validLoginOutcomes = []LoginOutcome{
	LoginOutcomeAuthenticated,
	LoginOutcomeDenied,
	LoginOutcomeNetworkError,
}

// String implements fmt.Stringer.
func (l LoginOutcome) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LoginOutcome.
func (l LoginOutcome) IsValid() bool {
	for _, candidate := range validLoginOutcomes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLoginOutcome converts raw input into a LoginOutcome.
func ParseLoginOutcome(value string) (LoginOutcome, error) {
	for _, candidate := range validLoginOutcomes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid login outcome %q", value)
}
