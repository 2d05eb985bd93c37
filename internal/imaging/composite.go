package imaging

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Paste draws overlay onto base with its top-left corner at the given point,
// using the overlay's alpha channel as the mask.
//
// Fully transparent overlay pixels leave the base untouched, fully opaque
// pixels replace it, and partial alpha blends linearly (Porter-Duff "over").
// The overlay must fit entirely inside the base; nothing is clipped.
//
// Paste mutates base in place and returns it. Callers reusing a template for
// several composites must pass a fresh copy each time.
//
// Errors:
//   - ErrOverlayBounds if at is negative, or at.X + overlay width exceeds the
//     base width, or at.Y + overlay height exceeds the base height
func Paste(base draw.Image, overlay image.Image, at image.Point) (draw.Image, error) {
	bb := base.Bounds()
	ob := overlay.Bounds()

	if at.X < 0 || at.Y < 0 ||
		at.X+ob.Dx() > bb.Dx() || at.Y+ob.Dy() > bb.Dy() {
		return nil, fmt.Errorf("%w: %dx%d overlay at (%d,%d) on %dx%d base",
			ErrOverlayBounds, ob.Dx(), ob.Dy(), at.X, at.Y, bb.Dx(), bb.Dy())
	}

	dst := image.Rectangle{Min: bb.Min.Add(at), Max: bb.Min.Add(at).Add(ob.Size())}
	draw.Draw(base, dst, overlay, ob.Min, draw.Over)
	return base, nil
}

// CenteredX returns the x offset that horizontally centres an overlay of the
// given width on a canvas, using integer division.
func CenteredX(canvasWidth, overlayWidth int) int {
	return (canvasWidth - overlayWidth) / 2
}
