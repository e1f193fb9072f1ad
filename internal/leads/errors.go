package leads

import "errors"

// ErrLeadNotFound is returned when a lead is not found
var ErrLeadNotFound = errors.New("lead not found")
