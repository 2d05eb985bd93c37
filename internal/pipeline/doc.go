// Package pipeline turns a raw product photo into a platform-ready composite.
//
// A single edit moves through fixed stages:
//
//	Start -> Scanned -> Cropped -> Resized -> Composited -> Done
//
// and drops to Failed from whichever stage an error surfaces in. The scan
// finds the product's bounding box against a near-white backdrop, the crop
// cuts it out, the resize scales it to the placement height and the composite
// centres it horizontally on a copy of the platform template at the placement
// offset.
//
// # Placements
//
// The vertical offset and target height depend on the platform and product
// type. They are supplied through a [PlacementLookup] (see config.PlacementTable)
// rather than hard-coded, so new platforms need only a CSV row and a template.
//
// # Batches
//
// [Editor.RunBatch] processes items sequentially. A failing item is logged and
// recorded in its [Result]; the remaining items still run.
//
// # Thread Safety
//
// An Editor holds no mutable state and may be shared. Templates are only read;
// every composite is painted onto a fresh clone.
package pipeline
