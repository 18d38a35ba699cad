package engine

import "github.com/pkg/errors"

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrInvalidSort     = errors.New("invalid sort order")
	ErrUnknownEvent    = errors.New("unknown event type")
	ErrUnknownMode     = errors.New("unknown view mode")
	ErrMalformedRow    = errors.New("malformed row")
)
