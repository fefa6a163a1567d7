package schema

import "errors"

// ErrConfig marks registration and descriptor configuration problems.
// These indicate bugs in type setup, not bad input data, and are never
// recovered from mid-conversion.
var ErrConfig = errors.New("schema config error")
