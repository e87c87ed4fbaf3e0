package homework

import "errors"

// Failure kinds of a poll iteration. Callers classify with errors.Is.
var (
	ErrEmptyResponse  = errors.New("empty api response")
	ErrMalformedShape = errors.New("malformed api response")
	ErrMissingField   = errors.New("missing homework field")
	ErrUnknownStatus  = errors.New("unknown homework status")
)
