package model

import "github.com/pkg/errors"

var (
	ErrOutOfBounds       = errors.New("coordinates out of bounds")
	ErrDimensionMismatch = errors.New("grid dimensions do not match")
	ErrAliasedGrid       = errors.New("destination grid aliases source grid")
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
)
