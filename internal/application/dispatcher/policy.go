package dispatcher

import (
	"fmt"
	"strings"
)

// Policy decides what happens to an error returned by an event
type Policy int

const (
	// PolicyStrict discards event errors. This is the default.
	PolicyStrict Policy = iota
	// PolicyTolerant routes event errors to the failure handler, which
	// becomes mandatory.
	PolicyTolerant
)

// String returns the configuration name of the policy
func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyTolerant:
		return "tolerant"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy parses "strict" or "tolerant", case-insensitively
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "":
		return PolicyStrict, nil
	case "tolerant":
		return PolicyTolerant, nil
	default:
		return PolicyStrict, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}
