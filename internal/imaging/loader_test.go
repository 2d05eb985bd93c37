package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// webpPixel is a 1x1 lossless WebP. x/image has no WebP encoder.
const webpPixel = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// withOrientation inserts an EXIF APP1 segment carrying the given
// orientation tag right after the JPEG SOI marker.
func withOrientation(jpg []byte, orientation uint16) []byte {
	exif := []byte("Exif\x00\x00")
	exif = append(exif, 'M', 'M', 0x00, 0x2a, 0x00, 0x00, 0x00, 0x08) // big-endian TIFF header, IFD at 8
	exif = append(exif, 0x00, 0x01)                                   // one entry
	exif = append(exif, 0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01)
	exif = append(exif, byte(orientation>>8), byte(orientation), 0x00, 0x00)
	exif = append(exif, 0x00, 0x00, 0x00, 0x00) // no next IFD

	size := len(exif) + 2
	out := append([]byte{}, jpg[:2]...)
	out = append(out, 0xff, 0xe1, byte(size>>8), byte(size))
	out = append(out, exif...)
	return append(out, jpg[2:]...)
}

func TestImageCache_TemplateDecodedOnce(t *testing.T) {
	cache := NewImageCache()
	path := writeFile(t, "ld.png", encodePNG(t, createInMemoryImage(52, 34, white)))

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if first != second {
		t.Error("unchanged template should come back from the cache")
	}
	if cache.decodes != 1 {
		t.Errorf("decodes: got %d, want 1", cache.decodes)
	}
}

func TestImageCache_ReloadsReplacedTemplate(t *testing.T) {
	cache := NewImageCache()
	path := writeFile(t, "ld.png", encodePNG(t, createInMemoryImage(52, 34, white)))

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// New artwork under the same name. Push the mtime forward so coarse
	// filesystem clocks still see a change.
	if err := os.WriteFile(path, encodePNG(t, createInMemoryImage(80, 40, black)), 0644); err != nil {
		t.Fatalf("failed to replace template: %v", err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load after replace failed: %v", err)
	}
	if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 40 {
		t.Errorf("dimensions: got %dx%d, want the new 80x40", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if r, _, _ := rgb8(img.At(0, 0)); r != 0 {
		t.Errorf("stale pixels returned, red %d", r)
	}
}

func TestImageCache_DropsDeletedFile(t *testing.T) {
	cache := NewImageCache()
	path := writeFile(t, "gone.png", encodePNG(t, createInMemoryImage(10, 10, white)))

	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail once the file is gone")
	}
	if _, ok := cache.entries[path]; ok {
		t.Error("entry for a deleted file should be dropped")
	}
}

func TestImageCache_LoadErrors(t *testing.T) {
	cache := NewImageCache()

	if _, err := cache.Load("/nonexistent/template.png"); err == nil {
		t.Error("Load should fail for a missing file")
	}
	if _, err := cache.Load(writeFile(t, "bad.png", []byte("not an image"))); err == nil {
		t.Error("Load should fail for data that is not an image")
	}
	if len(cache.entries) != 0 {
		t.Errorf("failed loads should not be cached, have %d entries", len(cache.entries))
	}
}

func TestImageCache_ConcurrentTemplateLoads(t *testing.T) {
	cache := NewImageCache()
	path := writeFile(t, "ld.png", encodePNG(t, createInMemoryImage(52, 34, white)))

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo_Formats(t *testing.T) {
	src := createProductImage(24, 16, 4, 4, 19, 11, black)

	var bmpBuf, tiffBuf, jpgBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, src); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}
	if err := tiff.Encode(&tiffBuf, src, nil); err != nil {
		t.Fatalf("tiff encode: %v", err)
	}
	if err := jpeg.Encode(&jpgBuf, src, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}

	// Extensions deliberately disagree with the contents.
	tests := []struct {
		name       string
		data       []byte
		wantFormat string
		wantW      int
		wantH      int
	}{
		{"photo.jpg", encodePNG(t, src), "png", 24, 16},
		{"photo.png", bmpBuf.Bytes(), "bmp", 24, 16},
		{"photo.bmp", tiffBuf.Bytes(), "tiff", 24, 16},
		{"photo.dat", jpgBuf.Bytes(), "jpeg", 24, 16},
	}

	cache := NewImageCache()
	for _, tt := range tests {
		t.Run(tt.wantFormat, func(t *testing.T) {
			info, err := LoadImageInfo(cache, writeFile(t, tt.name, tt.data))
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}
			if info.Format != tt.wantFormat {
				t.Errorf("Format: got %s, want %s", info.Format, tt.wantFormat)
			}
			if info.Width != tt.wantW || info.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", info.Width, info.Height, tt.wantW, tt.wantH)
			}
			if info.FileSizeBytes != int64(len(tt.data)) {
				t.Errorf("FileSizeBytes: got %d, want %d", info.FileSizeBytes, len(tt.data))
			}
			if info.HasAlpha {
				t.Error("opaque image reported as having alpha")
			}
		})
	}
}

func TestLoadImageInfo_WebP(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(webpPixel)
	if err != nil {
		t.Fatalf("bad fixture: %v", err)
	}

	info, err := LoadImageInfo(NewImageCache(), writeFile(t, "pixel.webp", data))
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Format != "webp" || info.Width != 1 || info.Height != 1 {
		t.Errorf("got %+v, want 1x1 webp", info)
	}
}

func TestLoadImageInfo_Transparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetNRGBA(3, 3, color.NRGBA{255, 255, 255, 0})

	info, err := LoadImageInfo(NewImageCache(), writeFile(t, "template.png", encodePNG(t, img)))
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if !info.HasAlpha {
		t.Error("template with a transparent pixel should report alpha")
	}
}

func TestOpen_AppliesEXIFOrientation(t *testing.T) {
	// Landscape 40x20 photo, dark block in the top-left corner.
	src := createProductImage(40, 20, 0, 0, 9, 9, black)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}

	// Orientation 6: the camera was turned, display rotated 90 degrees clockwise.
	path := writeFile(t, "phone.jpg", withOrientation(buf.Bytes(), 6))

	img, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 40 {
		t.Fatalf("dimensions: got %dx%d, want upright 20x40", img.Bounds().Dx(), img.Bounds().Dy())
	}

	// top-left of the stored frame is top-right once upright
	if r, _, _ := rgb8(img.At(15, 4)); r > 60 {
		t.Errorf("rotated block missing at top-right, red %d", r)
	}
	if r, _, _ := rgb8(img.At(4, 4)); r < 200 {
		t.Errorf("top-left should be backdrop after rotation, red %d", r)
	}

	// The product box is found on the upright image. JPEG ringing may
	// widen it inward, never past the frame.
	box := ScanBounds(img, DefaultTolerance)
	if box.Upper != 0 || box.Right != 19 || box.Left < 4 || box.Left > 10 {
		t.Errorf("ScanBounds on rotated photo: got %+v", box)
	}
}

func TestDecodeBytes_ProductPhoto(t *testing.T) {
	img, err := DecodeBytes(encodePNG(t, createProductImage(60, 40, 10, 5, 49, 34, color8(200, 0, 0))))
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if box := ScanBounds(img, DefaultTolerance); box != (BoundingBox{10, 5, 49, 34}) {
		t.Errorf("ScanBounds: got %+v, want {10 5 49 34}", box)
	}

	if _, err := DecodeBytes([]byte("GIF89a truncated")); err == nil {
		t.Error("DecodeBytes should fail for a truncated image")
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewImageCache()
	path := writeFile(t, "tmpl.png", encodePNG(t, createInMemoryImage(300, 200, white)))

	dims, err := GetDimensions(cache, path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 300 || dims.Height != 200 {
		t.Errorf("got %dx%d, want 300x200", dims.Width, dims.Height)
	}

	if _, err := GetDimensions(cache, "/nonexistent/image.png"); err == nil {
		t.Error("GetDimensions should fail for a missing file")
	}
}
