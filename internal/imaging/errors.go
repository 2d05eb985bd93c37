package imaging

import "errors"

var (
	// ErrOutOfBounds is returned when a crop region extends past the image edges.
	ErrOutOfBounds = errors.New("crop region out of image bounds")

	// ErrDegenerateRegion is returned when a crop region has no area.
	ErrDegenerateRegion = errors.New("degenerate crop region")

	// ErrMissingDimension is returned when Resize is given neither a width nor a height.
	ErrMissingDimension = errors.New("at least one of width or height must be specified")

	// ErrInvalidDimension is returned when a resize target, requested or computed, is below one pixel.
	ErrInvalidDimension = errors.New("invalid resize dimension")

	// ErrOverlayBounds is returned when a pasted overlay would extend past the base image.
	ErrOverlayBounds = errors.New("overlay image goes beyond the base image dimensions")

	// ErrInvalidLayout is returned for an unknown layout direction.
	ErrInvalidLayout = errors.New("invalid layout type")
)
