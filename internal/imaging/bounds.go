package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// NotFound is the scan result when no non-background pixel exists.
const NotFound = -1

// BoundingBox holds the results of the four directional background scans.
//
// Left and Upper are the first foreground column and row; Right and Lower are
// the last foreground column and row. Every field is NotFound (-1) when the
// image is entirely background.
type BoundingBox struct {
	Left  int `json:"left"`
	Upper int `json:"upper"`
	Right int `json:"right"`
	Lower int `json:"lower"`
}

// Found reports whether the scans located any foreground pixel.
func (b BoundingBox) Found() bool {
	return b.Left != NotFound && b.Upper != NotFound &&
		b.Right != NotFound && b.Lower != NotFound
}

// Rect returns the box as an image.Rectangle using the crop convention
// (Right and Lower exclusive).
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Upper, b.Right, b.Lower)
}

// grid is a flattened, origin-based NRGBA view of an image used by the scans.
type grid struct {
	pix    []uint8
	stride int
	width  int
	height int
}

func newGrid(img image.Image) *grid {
	n, ok := img.(*image.NRGBA)
	if !ok || n.Rect.Min != (image.Point{}) {
		n = imaging.Clone(img)
	}
	return &grid{
		pix:    n.Pix,
		stride: n.Stride,
		width:  n.Rect.Dx(),
		height: n.Rect.Dy(),
	}
}

func (g *grid) foreground(x, y, tolerance int) bool {
	i := y*g.stride + x*4
	return !isBackgroundRGB(g.pix[i], g.pix[i+1], g.pix[i+2], tolerance)
}

func (g *grid) left(tolerance int) int {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.foreground(x, y, tolerance) {
				return x
			}
		}
	}
	return NotFound
}

func (g *grid) top(tolerance int) int {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.foreground(x, y, tolerance) {
				return y
			}
		}
	}
	return NotFound
}

func (g *grid) right(tolerance int) int {
	for x := g.width - 1; x >= 0; x-- {
		for y := 0; y < g.height; y++ {
			if g.foreground(x, y, tolerance) {
				return x
			}
		}
	}
	return NotFound
}

func (g *grid) bottom(tolerance int) int {
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			if g.foreground(x, y, tolerance) {
				return y
			}
		}
	}
	return NotFound
}

// FindLeft returns the first column, scanning left to right, that contains a
// non-background pixel, or -1 if there is none.
func FindLeft(img image.Image, tolerance int) int {
	return newGrid(img).left(tolerance)
}

// FindTop returns the first row, scanning top to bottom, that contains a
// non-background pixel, or -1 if there is none.
func FindTop(img image.Image, tolerance int) int {
	return newGrid(img).top(tolerance)
}

// FindRight returns the first column, scanning right to left, that contains a
// non-background pixel, or -1 if there is none.
func FindRight(img image.Image, tolerance int) int {
	return newGrid(img).right(tolerance)
}

// FindBottom returns the first row, scanning bottom to top, that contains a
// non-background pixel, or -1 if there is none.
func FindBottom(img image.Image, tolerance int) int {
	return newGrid(img).bottom(tolerance)
}

// ScanBounds runs all four directional scans over a single flattened copy of
// the image.
//
// The result is identical to calling FindLeft, FindTop, FindRight and
// FindBottom separately. The other three scans are skipped when the left scan
// finds nothing, since an image with no foreground column has no foreground
// row either.
func ScanBounds(img image.Image, tolerance int) BoundingBox {
	g := newGrid(img)

	left := g.left(tolerance)
	if left == NotFound {
		return BoundingBox{Left: NotFound, Upper: NotFound, Right: NotFound, Lower: NotFound}
	}
	return BoundingBox{
		Left:  left,
		Upper: g.top(tolerance),
		Right: g.right(tolerance),
		Lower: g.bottom(tolerance),
	}
}
