package rast

import "errors"

// Sentinel errors returned by the Renderer. Wrapped errors carry context;
// match with [errors.Is].
var (
	// ErrInvalidSize reports non-positive framebuffer dimensions.
	ErrInvalidSize = errors.New("rast: width and height must be positive")

	// ErrInvalidBlendMode reports a DrawState.Blend outside the known modes.
	ErrInvalidBlendMode = errors.New("rast: unknown blend mode")

	// ErrInvalidFilterMode reports a DrawState.Filter outside the known modes.
	ErrInvalidFilterMode = errors.New("rast: unknown filter mode")

	// ErrInvalidCullMode reports a DrawState.Cull outside the known modes.
	ErrInvalidCullMode = errors.New("rast: unknown cull mode")

	// ErrIndexCount reports an index slice whose length is not a multiple
	// of three.
	ErrIndexCount = errors.New("rast: index count must be a multiple of 3")

	// ErrIndexRange reports an index referring past the vertex slice.
	ErrIndexRange = errors.New("rast: index out of vertex range")

	// ErrShortBuffer reports a composite destination too small for the
	// framebuffer dimensions.
	ErrShortBuffer = errors.New("rast: destination buffer too small")

	// ErrRendererClosed reports use of a Renderer after Close.
	ErrRendererClosed = errors.New("rast: renderer is closed")

	// ErrResizeBusy reports a Resize overlapping a draw or another resize.
	ErrResizeBusy = errors.New("rast: resize while renderer is busy")
)
