package models

import "errors"

// ErrInvalidArgument marks a caller contract violation: unknown scope, field,
// device, rule or scenario, an out-of-range value, or a malformed payload.
// Nothing is mutated when it is returned.
var ErrInvalidArgument = errors.New("invalid argument")
