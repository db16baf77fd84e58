package compose

import "errors"

// Common errors for compositing operations.
var (
	// ErrEmptyStack is returned by Pop and Flatten-style calls on a stack
	// with no pushed layers.
	ErrEmptyStack = errors.New("compose: empty stack")

	// ErrMaskSize is returned when a mask does not hold one value per
	// layer pixel.
	ErrMaskSize = errors.New("compose: mask size does not match layer")

	// ErrNilBuffer is returned when a layer or destination has no buffer.
	ErrNilBuffer = errors.New("compose: nil buffer")
)
