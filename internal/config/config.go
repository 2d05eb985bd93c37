// Package config loads compositor settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/product-compositor/internal/imaging"
)

// Config holds the compositor settings. Load fills it from the environment;
// tests build it directly.
type Config struct {
	// Debug turns on per-request and per-stage logging
	// (COMPOSITOR_LOG_LEVEL=debug).
	Debug bool

	// Tolerance is how far below 255 a channel may fall and still count as
	// backdrop (COMPOSITOR_TOLERANCE, 0 to imaging.MaxTolerance).
	Tolerance int

	// PlacementsPath is the CSV of per-platform placements
	// (COMPOSITOR_PLACEMENTS). Empty means no table is loaded and every
	// product_edit call must pass offset and height.
	PlacementsPath string

	// Templates maps an upper-case platform name to its template image path
	// (COMPOSITOR_TEMPLATES, "LD=/t/ld.jpg,JJT=/t/jjt.jpg").
	Templates map[string]string

	// OutputFormat is the encoding for returned images and batch archive
	// entries (COMPOSITOR_OUTPUT_FORMAT).
	OutputFormat imaging.Format

	// JPEGQuality applies when OutputFormat is JPEG (COMPOSITOR_JPEG_QUALITY).
	JPEGQuality int

	// CanvasColor is the hex background for image_layout
	// (COMPOSITOR_CANVAS_COLOR).
	CanvasColor string
}

// Load reads the configuration from COMPOSITOR_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Debug:          strings.EqualFold(getEnv("COMPOSITOR_LOG_LEVEL", "info"), "debug"),
		PlacementsPath: getEnv("COMPOSITOR_PLACEMENTS", ""),
		CanvasColor:    getEnv("COMPOSITOR_CANVAS_COLOR", "#FFFFFF"),
	}

	tol, err := strconv.Atoi(getEnv("COMPOSITOR_TOLERANCE", strconv.Itoa(imaging.DefaultTolerance)))
	if err != nil || tol < 0 || tol > imaging.MaxTolerance {
		return nil, fmt.Errorf("COMPOSITOR_TOLERANCE must be an integer between 0 and %d", imaging.MaxTolerance)
	}
	cfg.Tolerance = tol

	cfg.OutputFormat, err = imaging.ParseFormat(getEnv("COMPOSITOR_OUTPUT_FORMAT", string(imaging.FormatJPEG)))
	if err != nil {
		return nil, fmt.Errorf("COMPOSITOR_OUTPUT_FORMAT: %w", err)
	}

	quality, err := strconv.Atoi(getEnv("COMPOSITOR_JPEG_QUALITY", strconv.Itoa(imaging.DefaultJPEGQuality)))
	if err != nil || quality < 1 || quality > 100 {
		return nil, fmt.Errorf("COMPOSITOR_JPEG_QUALITY must be an integer between 1 and 100")
	}
	cfg.JPEGQuality = quality

	if _, err := imaging.ParseColor(cfg.CanvasColor); err != nil {
		return nil, fmt.Errorf("COMPOSITOR_CANVAS_COLOR: %w", err)
	}

	cfg.Templates, err = parseTemplates(getEnv("COMPOSITOR_TEMPLATES", ""))
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Template returns the template path configured for a platform.
func (c *Config) Template(platform string) (string, bool) {
	path, ok := c.Templates[strings.ToUpper(platform)]
	return path, ok
}

// Encoder returns an image encoder for the configured output format.
func (c *Config) Encoder() imaging.Encoder {
	return imaging.Encoder{Format: c.OutputFormat, JPEGQuality: c.JPEGQuality}
}

// parseTemplates reads "LD=/t/ld.jpg,JJT=/t/jjt.png".
func parseTemplates(s string) (map[string]string, error) {
	templates := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, path, ok := strings.Cut(pair, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("COMPOSITOR_TEMPLATES: malformed entry %q, want PLATFORM=path", pair)
		}
		templates[strings.ToUpper(name)] = path
	}
	return templates, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
