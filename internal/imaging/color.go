package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes a sampled pixel and how the background classifier
// sees it.
type ColorResult struct {
	Hex   string   `json:"hex"`   // Hex format "#RRGGBB" (no alpha)
	RGB   RGBColor `json:"rgb"`   // RGB components
	Alpha uint8    `json:"alpha"` // Alpha, 0 = transparent

	HSL HSLColor `json:"hsl"`

	// Distance is the largest per-channel distance from pure white; the pixel
	// is background for any tolerance >= Distance.
	Distance   int  `json:"distance"`
	Background bool `json:"background"`
}

// SampleColor reports the colour at (x, y) and whether it counts as
// background under the given tolerance.
//
// Coordinates are 0-based from the image's top-left pixel. Tuning a tolerance
// is usually done by sampling the photo's backdrop and reading Distance.
func SampleColor(img image.Image, x, y, tolerance int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || y < 0 || x >= bounds.Dx() || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	px := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
	c := colorful.Color{R: float64(px.R) / 255, G: float64(px.G) / 255, B: float64(px.B) / 255}
	h, s, l := c.Hsl()

	distance := 255 - int(min(px.R, px.G, px.B))

	return &ColorResult{
		Hex:   fmt.Sprintf("#%02X%02X%02X", px.R, px.G, px.B),
		RGB:   RGBColor{R: px.R, G: px.G, B: px.B},
		Alpha: px.A,
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
		Distance:   distance,
		Background: isBackgroundRGB(px.R, px.G, px.B, tolerance),
	}, nil
}
