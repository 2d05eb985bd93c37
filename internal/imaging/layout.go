package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
)

// Layout selects the direction in which Layout places images.
type Layout string

const (
	LayoutHorizontal Layout = "horizontal"
	LayoutVertical   Layout = "vertical"
)

// ParseLayout converts a layout name into a Layout.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case LayoutHorizontal, LayoutVertical:
		return Layout(s), nil
	default:
		return "", fmt.Errorf("%w: %q, choose %q or %q", ErrInvalidLayout, s, LayoutHorizontal, LayoutVertical)
	}
}

// LayoutImages places images side by side on a solid canvas.
//
// Horizontal layouts are as wide as all images together and as tall as the
// tallest one; images are top-aligned. Vertical layouts are the transpose,
// with images left-aligned. Uncovered canvas keeps the background colour.
func LayoutImages(images []image.Image, layout Layout, background color.Color) (*image.NRGBA, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("no images to lay out")
	}

	var width, height int
	for _, img := range images {
		b := img.Bounds()
		switch layout {
		case LayoutHorizontal:
			width += b.Dx()
			height = max(height, b.Dy())
		case LayoutVertical:
			width = max(width, b.Dx())
			height += b.Dy()
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidLayout, layout)
		}
	}

	canvas := imaging.New(width, height, background)
	offset := 0
	for _, img := range images {
		if layout == LayoutHorizontal {
			canvas = imaging.Paste(canvas, img, image.Pt(offset, 0))
			offset += img.Bounds().Dx()
		} else {
			canvas = imaging.Paste(canvas, img, image.Pt(0, offset))
			offset += img.Bounds().Dy()
		}
	}
	return canvas, nil
}

// Merge blends two images as a*(1-alpha) + b*alpha.
//
// When the images differ in size, b is first resized to a's dimensions.
// alpha is clamped to [0, 1].
func Merge(a, b image.Image, alpha float64) *image.RGBA {
	alpha = min(max(alpha, 0), 1)

	ab := a.Bounds()
	if b.Bounds().Size() != ab.Size() {
		b = imaging.Resize(b, ab.Dx(), ab.Dy(), imaging.Lanczos)
	}
	return blend.Opacity(a, b, alpha)
}
