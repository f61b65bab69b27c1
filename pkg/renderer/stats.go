package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Mode            string        // Render mode name
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera samples taken
	SamplesPerPixel int           // Samples taken for every pixel
	Duration        time.Duration // Wall time of the pass
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
		}
	}
	return total / float64(pixels)
}
