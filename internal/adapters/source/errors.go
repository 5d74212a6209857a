package source

import "errors"

// Sentinel kinds for extraction errors.
var (
	ErrInputNotFound  = errors.New("input file not found")
	ErrMissingColumn  = errors.New("required column missing")
	ErrMalformedInput = errors.New("malformed delimited input")
)
