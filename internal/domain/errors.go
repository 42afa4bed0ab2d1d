package domain

import "errors"

// ErrValidation marks input that fails a domain invariant. Handlers map it
// to a 400 response; everything else from the data layer stays a 500.
var ErrValidation = errors.New("invalid input")
