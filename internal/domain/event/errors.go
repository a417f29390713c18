package event

import "errors"

// ErrNameNotSet is returned by RequireName for events without a logical name
var ErrNameNotSet = errors.New("event name not set")
