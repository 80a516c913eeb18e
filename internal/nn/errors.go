package nn

import "github.com/pkg/errors"

var (
	// ErrInvalidState reports a backward pass on a layer that has no
	// cached forward pass, or a gradient read before any backward pass.
	ErrInvalidState = errors.New("invalid layer state")

	// ErrInvalidConfig reports an unusable network configuration.
	ErrInvalidConfig = errors.New("invalid network config")
)
