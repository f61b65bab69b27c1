package imageio

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Upscale enlarges img by an integer factor with nearest-neighbour sampling so
// individual pixels stay sharp. A scale of 1 or less returns a copy.
func Upscale(img image.Image, scale int) *image.NRGBA {
	if scale <= 1 {
		return imaging.Clone(img)
	}
	bounds := img.Bounds()
	return imaging.Resize(img, bounds.Dx()*scale, bounds.Dy()*scale, imaging.NearestNeighbor)
}

// SaveImage writes img in the format implied by the path's extension (png, jpg, gif, tif, bmp)
func SaveImage(path string, img image.Image, scale int) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("unsupported image format for %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := imaging.Save(Upscale(img, scale), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodeImage writes img to w in the given format ("png", "jpg", ...)
func EncodeImage(w io.Writer, img image.Image, format string) error {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported image format %q: %w", format, err)
	}
	if err := imaging.Encode(w, img, f); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
