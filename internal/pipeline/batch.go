package pipeline

import (
	"image"
	"log"
)

// Item is one product photo in a batch.
type Item struct {
	// Product identifies the item in logs and results, usually the file name.
	Product   string
	Image     image.Image
	Placement Placement
}

// Result is the outcome of one batch item. Exactly one of Image and Err is set.
type Result struct {
	Product string
	Image   *image.RGBA
	Err     error
}

// RunBatch edits every item onto template in order. Failures are logged and
// recorded per item; they never stop the batch.
func (e *Editor) RunBatch(items []Item, template image.Image) []Result {
	results := make([]Result, 0, len(items))
	failed := 0

	for _, item := range items {
		out, err := e.run(item.Product, item.Image, template, item.Placement)
		if err != nil {
			failed++
			log.Printf("skipping %s: %v", item.Product, err)
		}
		results = append(results, Result{Product: item.Product, Image: out, Err: err})
	}

	if e.Debug {
		log.Printf("batch complete: %d edited, %d failed", len(items)-failed, failed)
	}
	return results
}

// Succeeded returns the results that produced an image.
func Succeeded(results []Result) []Result {
	var ok []Result
	for _, r := range results {
		if r.Err == nil {
			ok = append(ok, r)
		}
	}
	return ok
}
