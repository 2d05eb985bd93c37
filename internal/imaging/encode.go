package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Format is an output encoding for produced images.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// DefaultJPEGQuality is used when an Encoder has no quality configured.
const DefaultJPEGQuality = 95

// ParseFormat converts a format name ("jpeg", "jpg" or "png") into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".jpg"
}

// MimeType returns the MIME type for the format.
func (f Format) MimeType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// Encoder writes images in a fixed output format.
type Encoder struct {
	Format      Format
	JPEGQuality int
}

// EncodedImage carries an image encoded as base64 for transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Bytes encodes img in the encoder's format.
func (e Encoder) Bytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, e.imagingFormat(), imaging.JPEGQuality(e.quality())); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Base64 encodes img and wraps it as an EncodedImage.
func (e Encoder) Base64(img image.Image) (*EncodedImage, error) {
	data, err := e.Bytes(img)
	if err != nil {
		return nil, err
	}
	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    e.Format.MimeType(),
	}, nil
}

// Save writes img to path, creating parent directories as needed. The format
// is taken from the path's extension when it names a known format, and from
// the encoder otherwise.
func (e Encoder) Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		format = e.imagingFormat()
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := imaging.Encode(f, img, format, imaging.JPEGQuality(e.quality())); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return f.Close()
}

func (e Encoder) imagingFormat() imaging.Format {
	if e.Format == FormatPNG {
		return imaging.PNG
	}
	return imaging.JPEG
}

func (e Encoder) quality() int {
	if e.JPEGQuality <= 0 || e.JPEGQuality > 100 {
		return DefaultJPEGQuality
	}
	return e.JPEGQuality
}
