package imaging

import (
	"image/color"
)

const (
	// DefaultTolerance is the background tolerance used by the edit pipeline.
	DefaultTolerance = 10

	// MaxTolerance classifies every pixel as background.
	MaxTolerance = 255
)

// IsBackground reports whether a pixel is near-white under the given tolerance.
//
// The pixel is flattened to 8-bit RGB with its alpha channel dropped, and is
// background iff every channel c satisfies 255 - c <= tolerance. A tolerance of
// 0 therefore requires pure white, and 255 accepts every pixel.
func IsBackground(c color.Color, tolerance int) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return isBackgroundRGB(n.R, n.G, n.B, tolerance)
}

func isBackgroundRGB(r, g, b uint8, tolerance int) bool {
	return 255-int(r) <= tolerance &&
		255-int(g) <= tolerance &&
		255-int(b) <= tolerance
}
