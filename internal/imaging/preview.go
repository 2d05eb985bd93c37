package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPreviewColor outlines detected bounds in the preview image.
const DefaultPreviewColor = "#FF0000"

// BoundsPreview returns a copy of img with the scanned bounding box outlined.
//
// The outline is drawn on the box's own columns and rows (Left..Right,
// Upper..Lower inclusive), so it sits exactly on the outermost foreground
// pixels the scans found. An image with no foreground is returned unmarked.
func BoundsPreview(img image.Image, box BoundingBox, outlineHex string) (*image.RGBA, error) {
	outline, err := ParseColor(outlineHex)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	if !box.Found() {
		return result, nil
	}

	for x := box.Left; x <= box.Right; x++ {
		result.Set(x, box.Upper, outline)
		result.Set(x, box.Lower, outline)
	}
	for y := box.Upper; y <= box.Lower; y++ {
		result.Set(box.Left, y, outline)
		result.Set(box.Right, y, outline)
	}
	return result, nil
}

// ParseColor parses a "#RRGGBB" hex string into an opaque colour.
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
