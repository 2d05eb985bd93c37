package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ImageCache keeps decoded platform templates and inspected images keyed by
// path.
//
// An entry is only reused while the file on disk keeps the size and
// modification time it had when it was decoded, so a template replaced under
// the same path is picked up on the next Load. Cached images are shared
// between callers and must be cloned before they are drawn on.
type ImageCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	decodes int
}

type cacheEntry struct {
	img     image.Image
	format  string
	size    int64
	modTime time.Time
}

func (e *cacheEntry) matches(fi os.FileInfo) bool {
	return e.size == fi.Size() && e.modTime.Equal(fi.ModTime())
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{entries: make(map[string]*cacheEntry)}
}

// Load returns the decoded image at path, decoding it only when it is not
// cached or the file changed since it was.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.entry(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) entry(path string) (*cacheEntry, error) {
	fi, err := os.Stat(path)
	if err != nil {
		c.mu.Lock()
		delete(c.entries, path)
		c.mu.Unlock()
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if ok && e.matches(fi) {
		return e, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, format, err := decode(data)
	if err != nil {
		return nil, err
	}

	e = &cacheEntry{img: img, format: format, size: fi.Size(), modTime: fi.ModTime()}
	c.mu.Lock()
	c.entries[path] = e
	c.decodes++
	c.mu.Unlock()
	return e, nil
}

// Open decodes an image file without caching it. Product photos go through
// here: each one is edited once.
func Open(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, _, err := decode(data)
	return img, err
}

// DecodeBytes decodes an in-memory encoded image, applying EXIF orientation.
func DecodeBytes(data []byte) (image.Image, error) {
	img, _, err := decode(data)
	return img, err
}

// decode sniffs the format from the header, then decodes with EXIF
// orientation applied so phone photos come out upright.
func decode(data []byte) (image.Image, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width and Height are the upright pixel dimensions, after EXIF
	// orientation.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is the decoder's name for the file contents: "png", "jpeg",
	// "gif", "bmp", "tiff" or "webp". The extension is not consulted.
	Format string `json:"format"`

	// HasAlpha reports pixels that are not fully opaque. A template with
	// transparency lets the canvas show through.
	HasAlpha bool `json:"has_alpha"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through the cache and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.entry(path)
	if err != nil {
		return nil, err
	}

	b := e.img.Bounds()
	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        e.format,
		HasAlpha:      !opaque(e.img),
		FileSizeBytes: e.size,
	}, nil
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image loaded through the cache.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &DimensionsResult{Width: b.Dx(), Height: b.Dy()}, nil
}
