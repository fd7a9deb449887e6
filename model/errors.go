package model

import "github.com/pkg/errors"

var (
	// ErrOutOfBounds is returned when a pattern does not fit inside the grid
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrInvalidGrid is returned for grid sizes or densities that cannot be built
	ErrInvalidGrid = errors.New("invalid grid")
)
