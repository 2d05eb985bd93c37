package specsheet

import (
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/product-compositor/internal/ocr"
)

// ErrRegionOutOfBounds is returned when an OCR region does not lie inside the image.
var ErrRegionOutOfBounds = errors.New("spec sheet region outside image")

// FromImage reads a spec sheet from an image file with OCR and parses it.
func FromImage(path, language string) (*Sheet, error) {
	result, err := ocr.ExtractText(path, language)
	if err != nil {
		return nil, err
	}
	return Parse(result.FullText), nil
}

// FromRegion reads only the part of img inside region. Product pages often
// carry the spec table next to photos and logos that would otherwise come
// back as noise rows.
func FromRegion(img image.Image, region image.Rectangle, language string) (*Sheet, error) {
	b := img.Bounds()
	if region.Empty() || !region.In(b.Sub(b.Min)) {
		return nil, fmt.Errorf("%w: %v in %dx%d", ErrRegionOutOfBounds, region, b.Dx(), b.Dy())
	}

	r := region.Add(b.Min)
	result, err := ocr.ExtractTextFromRegion(img, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, language)
	if err != nil {
		return nil, err
	}
	return Parse(result.FullText), nil
}
