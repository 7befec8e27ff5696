package sheet

import "errors"

var (
	// ErrInvalidInput indicates the caller supplied an empty frame
	// sequence or an override that cannot produce a valid grid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCanvasTooLarge indicates the planned canvas would exceed the
	// compositor's allocation limit. It is reported before any pixel
	// memory is allocated.
	ErrCanvasTooLarge = errors.New("canvas too large")

	// ErrPlanMismatch indicates the frame sequence handed to the
	// compositor does not match the layout it was planned for.
	ErrPlanMismatch = errors.New("frame count does not match layout")
)
