// Package imaging provides the image operations behind the product compositor.
//
// This package implements the building blocks of the edit pipeline: background
// classification, bounding-box detection, cropping, aspect-preserving resizing
// and alpha compositing, plus the supporting helpers used by the tool server
// (image loading and caching, colour sampling, bounds previews, layout strips,
// merges and encoding). All operations work with standard Go image.Image types
// and use a coordinate system where (0,0) is the top-left pixel of the image,
// X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based and relative to the
// image's Bounds().Min:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For crop regions, (left,upper) is inclusive and (right,lower) is exclusive
//
// # Bounding Boxes
//
// ScanBounds and the four Find* functions return the index of the first
// non-background column or row seen from each edge. Right and Lower are the
// last foreground column and row themselves, so passing a BoundingBox straight
// to Crop drops that final column and row. A value of -1 means no foreground
// pixel exists.
//
// # Ownership
//
// Crop, Resize, LayoutImages and Merge return new images owned by the caller.
// Paste is the one operation that mutates its input: it draws onto the base
// image in place and returns it. Callers that reuse a template across several
// pastes must clone it first.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. It revalidates entries
// against the file's size and modification time on every Load. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Validation failures wrap one of the package's sentinel errors, so callers
// can classify them with errors.Is:
//   - ErrOutOfBounds: crop region outside the image
//   - ErrDegenerateRegion: crop region with zero or negative area
//   - ErrMissingDimension: resize called without a target
//   - ErrInvalidDimension: resize target or computed size below one pixel
//   - ErrOverlayBounds: paste overlay does not fit inside the base
//   - ErrInvalidLayout: unknown layout direction
package imaging
