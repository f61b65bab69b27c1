package imageio

import (
	"bytes"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestUpscale(t *testing.T) {
	img := newTestImage()

	scaled := Upscale(img, 3)
	if scaled.Bounds().Dx() != 9 || scaled.Bounds().Dy() != 6 {
		t.Fatalf("Expected 9x6, got %v", scaled.Bounds())
	}

	// Every source pixel becomes a solid 3x3 block
	tests := []struct {
		x, y     int
		expected color.NRGBA
	}{
		{0, 0, color.NRGBA{255, 0, 0, 255}},
		{2, 2, color.NRGBA{255, 0, 0, 255}},
		{4, 1, color.NRGBA{0, 255, 0, 255}},
		{8, 5, color.NRGBA{255, 255, 255, 255}},
		{3, 4, color.NRGBA{127, 127, 127, 255}},
	}
	for _, tt := range tests {
		if got := scaled.NRGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d, %d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}

	if same := Upscale(img, 1); same.Bounds() != img.Bounds() {
		t.Errorf("Scale 1 should keep size, got %v", same.Bounds())
	}
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	if err := SaveImage(path, newTestImage(), 2); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	loaded, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("Failed to open saved image: %v", err)
	}
	if loaded.Bounds().Dx() != 6 || loaded.Bounds().Dy() != 4 {
		t.Errorf("Expected 6x4, got %v", loaded.Bounds())
	}

	if err := SaveImage(filepath.Join(dir, "out.xyz"), newTestImage(), 1); err == nil {
		t.Error("Expected error for unknown extension")
	}
}

func TestEncodeImage(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, newTestImage(), "png"); err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	r, g, b, _ := decoded.At(0, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("Expected red top-left pixel, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}

	if err := EncodeImage(&buf, newTestImage(), "webp"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
