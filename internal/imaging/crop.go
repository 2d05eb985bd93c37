package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts the pixel rectangle [left,right) x [upper,lower) from an image.
//
// Coordinates are relative to the image's top-left pixel. Bounds are checked
// before the region's area, so a BoundingBox still holding -1 sentinels fails
// with ErrOutOfBounds.
//
// Errors:
//   - ErrOutOfBounds if left < 0, upper < 0, right > width or lower > height
//   - ErrDegenerateRegion if left >= right or upper >= lower
func Crop(img image.Image, left, upper, right, lower int) (*image.NRGBA, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if left < 0 || upper < 0 || right > width || lower > height {
		return nil, fmt.Errorf("%w: region (%d,%d)-(%d,%d) outside image (0,0)-(%d,%d)",
			ErrOutOfBounds, left, upper, right, lower, width, height)
	}
	if left >= right || upper >= lower {
		return nil, fmt.Errorf("%w: left must be < right and upper must be < lower, got (%d,%d)-(%d,%d)",
			ErrDegenerateRegion, left, upper, right, lower)
	}

	region := image.Rect(left, upper, right, lower).Add(bounds.Min)
	return imaging.Crop(img, region), nil
}

// CropToBox crops an image to a scanned BoundingBox.
func CropToBox(img image.Image, box BoundingBox) (*image.NRGBA, error) {
	return Crop(img, box.Left, box.Upper, box.Right, box.Lower)
}
