package tensor

import "github.com/pkg/errors"

var (
	// ErrShapeMismatch reports operands whose shapes cannot be combined:
	// a matmul with disagreeing inner dimensions, a gradient whose shape
	// differs from its parameter, a window that does not tile its input.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidShape reports a shape with a non-positive dimension or a
	// data slice whose length does not match the shape.
	ErrInvalidShape = errors.New("invalid shape")
)
