package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// TargetSize computes the output dimensions of an aspect-preserving resize.
//
// A zero width or height means "not provided". When a width is given the
// height is floor(width / ratio); otherwise the width is floor(height * ratio),
// where ratio is the source width divided by its height. If both are given the
// width wins and the height is recomputed from it.
func TargetSize(srcWidth, srcHeight, width, height int) (int, int, error) {
	if width == 0 && height == 0 {
		return 0, 0, ErrMissingDimension
	}
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("%w: requested %dx%d", ErrInvalidDimension, width, height)
	}
	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: source image is %dx%d", ErrInvalidDimension, srcWidth, srcHeight)
	}

	ratio := float64(srcWidth) / float64(srcHeight)
	if width != 0 {
		height = int(float64(width) / ratio)
	} else {
		width = int(float64(height) * ratio)
	}

	if width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d source scales to %dx%d",
			ErrInvalidDimension, srcWidth, srcHeight, width, height)
	}
	return width, height, nil
}

// Resize rescales an image to a target width or height, preserving its aspect
// ratio. Pass 0 for the dimension that should be derived.
//
// Resampling is bilinear. Only the output dimensions are guaranteed; exact
// pixel values depend on the filter.
func Resize(img image.Image, width, height int) (*image.RGBA, error) {
	bounds := img.Bounds()
	w, h, err := TargetSize(bounds.Dx(), bounds.Dy(), width, height)
	if err != nil {
		return nil, err
	}
	return transform.Resize(img, w, h, transform.Linear), nil
}
