package syntax

import "errors"

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidColor    = errors.New("invalid color")
	ErrInvalidPattern  = errors.New("invalid rule pattern")
)
