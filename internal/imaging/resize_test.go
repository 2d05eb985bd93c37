package imaging

import (
	"errors"
	"image/color"
	"testing"
)

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name                  string
		srcW, srcH            int
		width, height         int
		wantWidth, wantHeight int
	}{
		{"height only", 20, 10, 0, 50, 100, 50},
		{"width only", 20, 10, 50, 0, 50, 25},
		{"floor width", 333, 100, 0, 50, 166, 50},
		{"floor height", 100, 333, 50, 0, 50, 166},
		{"width wins when both given", 20, 10, 40, 999, 40, 20},
		{"upscale", 50, 25, 0, 100, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := TargetSize(tt.srcW, tt.srcH, tt.width, tt.height)
			if err != nil {
				t.Fatalf("TargetSize failed: %v", err)
			}
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("got %dx%d, want %dx%d", w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestTargetSize_Errors(t *testing.T) {
	tests := []struct {
		name          string
		srcW, srcH    int
		width, height int
		want          error
	}{
		{"no dimensions", 20, 10, 0, 0, ErrMissingDimension},
		{"negative width", 20, 10, -5, 0, ErrInvalidDimension},
		{"negative height", 20, 10, 0, -5, ErrInvalidDimension},
		{"computed width below one", 1, 100, 0, 50, ErrInvalidDimension},
		{"computed height below one", 100, 1, 50, 0, ErrInvalidDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := TargetSize(tt.srcW, tt.srcH, tt.width, tt.height)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResize(t *testing.T) {
	img := createInMemoryImage(20, 10, color.RGBA{0, 0, 255, 255})

	resized, err := Resize(img, 0, 50)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if resized.Bounds().Dx() != 100 || resized.Bounds().Dy() != 50 {
		t.Errorf("dimensions: got %dx%d, want 100x50", resized.Bounds().Dx(), resized.Bounds().Dy())
	}

	// A uniform image stays (nearly) uniform under bilinear resampling
	if r, g, b := rgb8(resized.At(50, 25)); r > 2 || g > 2 || b < 253 {
		t.Errorf("center color: got (%d,%d,%d), want about (0,0,255)", r, g, b)
	}
}

func TestResize_ByWidth(t *testing.T) {
	img := createInMemoryImage(300, 200, color.RGBA{0, 0, 255, 255})

	resized, err := Resize(img, 150, 0)
	if err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if resized.Bounds().Dx() != 150 || resized.Bounds().Dy() != 100 {
		t.Errorf("dimensions: got %dx%d, want 150x100", resized.Bounds().Dx(), resized.Bounds().Dy())
	}
}

func TestResize_MissingDimension(t *testing.T) {
	img := createInMemoryImage(20, 10, white)

	if _, err := Resize(img, 0, 0); !errors.Is(err, ErrMissingDimension) {
		t.Errorf("got %v, want ErrMissingDimension", err)
	}
}
