package model

import "errors"

// Error kinds returned by the store and the input parsers. Callers match
// them with errors.Is; the wrapped message names the offending record or field.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
)
