package imageio

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
)

// WritePPM writes img as a plain-text (P3) PPM: a three-line header followed by
// one "R G B" line per pixel, top row first and left to right within a row
func WritePPM(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("failed to write PPM pixel: %w", err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM: %w", err)
	}
	return nil
}

// SavePPM writes img to path as a P3 PPM, creating parent directories as needed
func SavePPM(path string, img *image.RGBA) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := WritePPM(file, img); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
