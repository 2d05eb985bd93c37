package pipeline

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/anthonynsimon/bild/clone"

	"github.com/ironsheep/product-compositor/internal/imaging"
)

// State is a stage of a single product edit.
type State int

const (
	Start State = iota
	Scanned
	Cropped
	Resized
	Composited
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Start:
		return "start"
	case Scanned:
		return "scanned"
	case Cropped:
		return "cropped"
	case Resized:
		return "resized"
	case Composited:
		return "composited"
	case Done:
		return "done"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var (
	// ErrNoForeground means the scan found nothing but backdrop.
	ErrNoForeground = errors.New("no foreground found")

	// ErrNoPlacement means no placement is configured for a platform and
	// product type pair.
	ErrNoPlacement = errors.New("no placement configured")
)

// Placement is where a product goes on a template: the top edge of the
// pasted product sits Offset pixels from the template top, and the product
// is scaled to Height pixels tall.
type Placement struct {
	Offset int `json:"offset"`
	Height int `json:"height"`
}

// PlacementLookup resolves the placement for a platform and product type.
// Implementations return an error wrapping ErrNoPlacement for unknown pairs.
type PlacementLookup interface {
	Placement(platform, productType string) (Placement, error)
}

// EditError reports the stage an edit failed in.
type EditError struct {
	// Stage is the last stage the edit completed before failing.
	Stage   State
	Product string
	Err     error
}

func (e *EditError) Error() string {
	if e.Product != "" {
		return fmt.Sprintf("edit %s failed after %s: %v", e.Product, e.Stage, e.Err)
	}
	return fmt.Sprintf("edit failed after %s: %v", e.Stage, e.Err)
}

func (e *EditError) Unwrap() error { return e.Err }

// Editor runs the scan, crop, resize and composite stages.
type Editor struct {
	// Tolerance is the background tolerance used by the scan.
	Tolerance int

	// Debug logs every stage transition.
	Debug bool
}

// NewEditor returns an Editor using the default background tolerance.
func NewEditor() *Editor {
	return &Editor{Tolerance: imaging.DefaultTolerance}
}

// Run edits one product photo onto template. The template is not modified.
func (e *Editor) Run(input, template image.Image, p Placement) (*image.RGBA, error) {
	return e.run("", input, template, p)
}

func (e *Editor) run(product string, input, template image.Image, p Placement) (*image.RGBA, error) {
	state := Start
	fail := func(err error) (*image.RGBA, error) {
		if e.Debug {
			log.Printf("edit %q: %s -> %s: %v", product, state, Failed, err)
		}
		return nil, &EditError{Stage: state, Product: product, Err: err}
	}
	advance := func(next State) {
		if e.Debug {
			log.Printf("edit %q: %s -> %s", product, state, next)
		}
		state = next
	}

	box := imaging.ScanBounds(input, e.Tolerance)
	advance(Scanned)
	if !box.Found() {
		return fail(ErrNoForeground)
	}

	cropped, err := imaging.CropToBox(input, box)
	if err != nil {
		return fail(err)
	}
	advance(Cropped)

	resized, err := imaging.Resize(cropped, 0, p.Height)
	if err != nil {
		return fail(err)
	}
	advance(Resized)

	canvas := clone.AsRGBA(template)
	x := imaging.CenteredX(canvas.Bounds().Dx(), resized.Bounds().Dx())
	if _, err := imaging.Paste(canvas, resized, image.Pt(x, p.Offset)); err != nil {
		return fail(err)
	}
	advance(Composited)

	advance(Done)
	return canvas, nil
}
